// Package tags locates the KSN and encrypted track 2 in a card reader response.
package tags

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
)

const (
	TagKSN             = "FFEE12"
	TagEncryptedTrack2 = "DFEF4D"
)

// MissingDataError reports a transaction without the data needed for decryption.
type MissingDataError struct {
	Tag    string
	Reason string
}

func (e *MissingDataError) Error() string {
	if e.Tag == "" {
		return e.Reason
	}

	return fmt.Sprintf("%s (tag %s)", e.Reason, e.Tag)
}

var (
	ErrMissingKSN       = &MissingDataError{Tag: TagKSN, Reason: "Missing KSN"}
	ErrMissingTrackData = &MissingDataError{Tag: TagEncryptedTrack2, Reason: "Missing Track Data"}
	ErrEmptyTransaction = &MissingDataError{Reason: "Transaction carries neither card data nor tags"}
)

// Source tells which reader path produced a payload.
type Source int

const (
	SourceCardData Source = iota
	SourceTags
)

func (s Source) String() string {
	if s == SourceTags {
		return "tags"
	}

	return "card_data"
}

// CardData is the swipe result as delivered by the reader.
type CardData struct {
	EncTrack2 []byte
	KSN       []byte
}

// Transaction is a reader response: swipe card data or, for contactless
// reads, the unencrypted tag map.
type Transaction struct {
	CardData        *CardData
	UnencryptedTags map[string][]byte
}

// Payload is the input of the track decryption.
type Payload struct {
	KSN             []byte
	EncryptedTrack2 []byte
	Source          Source
}

func (p Payload) KSNHex() string   { return cryptoutils.Raw2Str(p.KSN) }
func (p Payload) TrackHex() string { return cryptoutils.Raw2Str(p.EncryptedTrack2) }

// Extract returns the KSN and encrypted track of txn. Card data wins over tags.
func Extract(txn Transaction) (Payload, error) {
	if cd := txn.CardData; cd != nil {
		if len(cd.KSN) == 0 {
			return Payload{}, ErrMissingKSN
		}
		if len(cd.EncTrack2) == 0 {
			return Payload{}, ErrMissingTrackData
		}

		return Payload{KSN: cd.KSN, EncryptedTrack2: cd.EncTrack2, Source: SourceCardData}, nil
	}

	if len(txn.UnencryptedTags) == 0 {
		return Payload{}, ErrEmptyTransaction
	}

	ksn, track, err := ExtractTrackAndKsn(txn.UnencryptedTags)
	if err != nil {
		return Payload{}, err
	}

	return Payload{KSN: ksn, EncryptedTrack2: track, Source: SourceTags}, nil
}

// ExtractTrackAndKsn looks up FFEE12 and DFEF4D. Tag names match case-insensitively
// and an empty value counts as missing.
func ExtractTrackAndKsn(unencryptedTags map[string][]byte) (ksn, track []byte, err error) {
	ksn = lookup(unencryptedTags, TagKSN)
	if len(ksn) == 0 {
		return nil, nil, ErrMissingKSN
	}
	track = lookup(unencryptedTags, TagEncryptedTrack2)
	if len(track) == 0 {
		return nil, nil, ErrMissingTrackData
	}

	return ksn, track, nil
}

func lookup(m map[string][]byte, tag string) []byte {
	if v, ok := m[tag]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(strings.TrimSpace(k), tag) {
			return v
		}
	}

	return nil
}

// ParseTagArgs decodes TAG=HEX values given on the command line.
func ParseTagArgs(args map[string]string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(args))
	for tag, value := range args {
		raw, err := cryptoutils.BytesFromHex(cryptoutils.NormalizeHex(value))
		if err != nil {
			return nil, fmt.Errorf("tag %s: %w", tag, err)
		}
		out[strings.ToUpper(strings.TrimSpace(tag))] = raw
	}

	return out, nil
}

// IsMissingData reports whether err is one of the missing data errors.
func IsMissingData(err error) bool {
	var me *MissingDataError
	return errors.As(err, &me)
}
