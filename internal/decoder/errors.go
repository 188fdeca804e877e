package decoder

import "errors"

var (
	// ErrBlankRecord is returned for blank record followed by further records.
	ErrBlankRecord = errors.New("record is blank")
	// ErrRecordTooShort is returned for record with fewer fields than schema requires.
	ErrRecordTooShort = errors.New("record has fewer fields than schema requires")
	// ErrMissingCode is returned for record with empty product code.
	ErrMissingCode = errors.New("record has empty product code")
	// ErrExcluded is returned for record flagged as excluded by supplier.
	ErrExcluded = errors.New("record is excluded")
)
