package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jianpu",
	Short: "Jianpu segmentation engine",
	Long:  `Converts timestamped notes into renderable jianpu notation blocks.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
