package tags

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testKSN   = []byte{0x62, 0x99, 0x49, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}
	testTrack = []byte{0xA5, 0x71, 0x32, 0xF8, 0x40, 0x73, 0xC8, 0xA9, 0x9C, 0x95, 0x02, 0xAC, 0x15, 0x16, 0xF9, 0xAD}
)

func TestExtractTrackAndKsn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tags    map[string][]byte
		wantErr error
	}{
		{
			name: "both present",
			tags: map[string][]byte{TagKSN: testKSN, TagEncryptedTrack2: testTrack, "9F02": {0x01}},
		},
		{
			name: "lowercase tag names",
			tags: map[string][]byte{"ffee12": testKSN, "dfef4d": testTrack},
		},
		{
			name:    "only ksn",
			tags:    map[string][]byte{TagKSN: testKSN},
			wantErr: ErrMissingTrackData,
		},
		{
			name:    "only track",
			tags:    map[string][]byte{TagEncryptedTrack2: testTrack},
			wantErr: ErrMissingKSN,
		},
		{
			name:    "empty ksn value",
			tags:    map[string][]byte{TagKSN: {}, TagEncryptedTrack2: testTrack},
			wantErr: ErrMissingKSN,
		},
		{
			name:    "nil map",
			wantErr: ErrMissingKSN,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ksn, track, err := ExtractTrackAndKsn(tt.tags)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Nil(t, ksn)
				assert.Nil(t, track)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, testKSN, ksn)
			assert.Equal(t, testTrack, track)
		})
	}
}

func TestMissingDataReasons(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Missing KSN", ErrMissingKSN.Reason)
	assert.Equal(t, "Missing Track Data", ErrMissingTrackData.Reason)
	assert.NotEqual(t, ErrMissingKSN.Error(), ErrMissingTrackData.Error())
	assert.True(t, IsMissingData(ErrEmptyTransaction))
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("card data", func(t *testing.T) {
		t.Parallel()
		p, err := Extract(Transaction{
			CardData:        &CardData{EncTrack2: testTrack, KSN: testKSN},
			UnencryptedTags: map[string][]byte{TagKSN: {0x00}},
		})
		require.NoError(t, err)
		assert.Equal(t, SourceCardData, p.Source)
		assert.Equal(t, "62994900000000000001", p.KSNHex())
		assert.Equal(t, "A57132F84073C8A99C9502AC1516F9AD", p.TrackHex())
	})

	t.Run("card data without ksn", func(t *testing.T) {
		t.Parallel()
		_, err := Extract(Transaction{CardData: &CardData{EncTrack2: testTrack}})
		assert.ErrorIs(t, err, ErrMissingKSN)
	})

	t.Run("contactless tags", func(t *testing.T) {
		t.Parallel()
		p, err := Extract(Transaction{
			UnencryptedTags: map[string][]byte{TagKSN: testKSN, TagEncryptedTrack2: testTrack},
		})
		require.NoError(t, err)
		assert.Equal(t, SourceTags, p.Source)
		assert.Equal(t, "tags", p.Source.String())
	})

	t.Run("contactless without track", func(t *testing.T) {
		t.Parallel()
		_, err := Extract(Transaction{UnencryptedTags: map[string][]byte{TagKSN: testKSN}})
		assert.ErrorIs(t, err, ErrMissingTrackData)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		_, err := Extract(Transaction{})
		assert.ErrorIs(t, err, ErrEmptyTransaction)
	})
}

func TestParseTagArgs(t *testing.T) {
	t.Parallel()

	got, err := ParseTagArgs(map[string]string{"ffee12": "62 99 49 00 00 00 00 00 00 01"})
	require.NoError(t, err)
	assert.Equal(t, testKSN, got[TagKSN])

	_, err = ParseTagArgs(map[string]string{TagKSN: "629"})
	assert.Error(t, err)
}
