package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flufy3d/jianpu/constants"
	"github.com/flufy3d/jianpu/db"
	"github.com/flufy3d/jianpu/midi"
	"github.com/flufy3d/jianpu/segment"
	"github.com/flufy3d/jianpu/util"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var renderOut string
var renderNoDottedRests bool

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default: <uuid>.json in the out dir)")
	renderCmd.Flags().BoolVar(&renderNoDottedRests, "no-dotted-rests", false, "split dotted rest lengths into tied undotted rests")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <file.mid>",
	Short: "Segments a MIDI file into notation blocks",
	Long:  `Segments a MIDI file into notation blocks and writes them as JSON`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		render(args[0])
	},
}

func render(path string) {
	score, err := midi.ReadScore(path)
	if err != nil {
		fmt.Printf("Could not load %v because: %v\n", path, err)
		os.Exit(1)
	}

	opts := segment.DefaultOptions()
	opts.AllowDottedRests = !renderNoDottedRests
	res := segment.BuildWithOptions(score, opts)

	out := res.Output()
	filename := filepath.Base(path)
	metadatas, err := db.GetScoreMetadatas([]string{filename})
	if err != nil {
		fmt.Printf("Skipping metadata for %v because: %v\n", filename, err)
	} else if md, ok := metadatas[filename]; ok {
		out.Metadata = &md
	}

	target := renderOut
	if target == "" {
		os.MkdirAll(constants.GetOutDir(), 0777)
		target = filepath.Join(constants.GetOutDir(), uuid.New().String()+".json")
	}
	if err := util.WriteJSON(target, out); err != nil {
		panic("Write failed for file: " + target + ": " + err.Error())
	}

	fmt.Printf("Wrote %v blocks (%v quarters) to %v\n", len(out.Blocks), out.TotalDuration, target)
	for _, d := range out.Diagnostics {
		fmt.Printf("Diagnostic at %v: %v\n", d.Q, d.Message)
	}
}
