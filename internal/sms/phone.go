package sms

import (
	"errors"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalidPhoneNumber is returned when a phone number cannot be parsed or validated.
var ErrInvalidPhoneNumber = errors.New("invalid phone number")

// NormalizePhone parses and validates a phone number using libphonenumber,
// returning E.164 format. region is the ISO 3166-1 alpha-2 default region for
// numbers written in local format (e.g. "IR"); with an empty region the input
// must carry a '+' country prefix.
func NormalizePhone(input, region string) (string, error) {
	plusCount := 0
	for _, r := range input {
		switch {
		case r == '+':
			plusCount++
		case r >= '0' && r <= '9', r == ' ', r == '-', r == '(', r == ')', r == '.':
			// ok
		default:
			return "", ErrInvalidPhoneNumber
		}
	}
	if plusCount > 1 || (plusCount == 0 && region == "") {
		return "", ErrInvalidPhoneNumber
	}

	num, err := phonenumbers.Parse(input, region)
	if err != nil {
		return "", ErrInvalidPhoneNumber
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhoneNumber
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// NormalizePhones normalizes every number in the slice, failing on the first
// invalid entry.
func NormalizePhones(inputs []string, region string) ([]string, error) {
	out := make([]string, 0, len(inputs))
	for _, in := range inputs {
		num, err := NormalizePhone(in, region)
		if err != nil {
			return nil, err
		}
		out = append(out, num)
	}
	return out, nil
}
