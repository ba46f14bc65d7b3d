package options

import (
	"github.com/spf13/cobra"
)

// RecordOptions
type RecordOptions struct {
	AudioURI  string
	NoProcess bool
}

func AddRecordArgs(cmd *cobra.Command, o *RecordOptions) {
	cmd.Flags().StringVar(&o.AudioURI, "audio", "",
		"Reference to an audio recording of the dream.")
	cmd.Flags().BoolVar(&o.NoProcess, "no-process", false,
		"Save the dream without follow-up questions or reconstruction.")
}

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask for confirmation.")
}
