// Package tags provides the reader tag extraction command.
package tags

import (
	"fmt"

	"github.com/andrei-cloud/go_dukpt/internal/config"
	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
	"github.com/andrei-cloud/go_dukpt/pkg/tags"
	"github.com/andrei-cloud/go_dukpt/pkg/track"
	"github.com/spf13/cobra"
)

// NewTagsCommand creates the tags command group.
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Card reader response tags",
	}

	cmd.AddCommand(newExtractCommand())

	return cmd
}

func newExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Locate the KSN and encrypted track 2 in a reader response",
		Long: fmt.Sprintf(`Locate the KSN (tag %s) and the encrypted track 2 (tag %s) in the
unencrypted tags of a contactless read, or take them from swipe card data
given with --card-ksn and --card-track.`, tags.TagKSN, tags.TagEncryptedTrack2),
		Example: "  go_dukpt tags extract --tag FFEE12=62994900000000000001 --tag DFEF4D=A571...",
		RunE:    runExtract,
	}

	cmd.Flags().StringToString("tag", nil, "Reader tag as TAG=HEX, repeatable")
	cmd.Flags().String("card-ksn", "", "KSN from swipe card data")
	cmd.Flags().String("card-track", "", "Encrypted track 2 from swipe card data")
	cmd.Flags().Bool("decrypt", false, "Decrypt the located track with the configured BDK")

	return cmd
}

func runExtract(cmd *cobra.Command, _ []string) error {
	tagArgs, _ := cmd.Flags().GetStringToString("tag")
	cardKSN, _ := cmd.Flags().GetString("card-ksn")
	cardTrack, _ := cmd.Flags().GetString("card-track")
	decrypt, _ := cmd.Flags().GetBool("decrypt")

	var txn tags.Transaction
	if cardKSN != "" || cardTrack != "" {
		ksn, err := optionalHex(cardKSN)
		if err != nil {
			return fmt.Errorf("card ksn: %w", err)
		}
		enc, err := optionalHex(cardTrack)
		if err != nil {
			return fmt.Errorf("card track: %w", err)
		}
		txn.CardData = &tags.CardData{KSN: ksn, EncTrack2: enc}
	}
	if len(tagArgs) > 0 {
		parsed, err := tags.ParseTagArgs(tagArgs)
		if err != nil {
			return err
		}
		txn.UnencryptedTags = parsed
	}

	payload, err := tags.Extract(txn)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Source:          %s\n", payload.Source)
	fmt.Fprintf(out, "KSN:             %s\n", payload.KSNHex())
	fmt.Fprintf(out, "Encrypted track: %s\n", payload.TrackHex())

	if !decrypt {
		return nil
	}

	bdkHex, err := config.BDK()
	if err != nil {
		return err
	}
	d, err := track.NewDecryptor(bdkHex)
	if err != nil {
		return err
	}
	plain, err := d.Decrypt(payload.TrackHex(), payload.KSNHex())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Track:           %s\n", track.TrimPadding(plain))

	return nil
}

func optionalHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}

	return cryptoutils.BytesFromHex(cryptoutils.NormalizeHex(s))
}
