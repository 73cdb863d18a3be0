package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/flufy3d/jianpu/model"
	"github.com/flufy3d/jianpu/segment"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

func init() {
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Segments live MIDI input",
	Long:  `Listens on the first MIDI input port and re-segments the played notes as they arrive`,
	Run: func(cmd *cobra.Command, args []string) {
		listen()
	},
}

func listen() {
	defer midi.CloseDriver()
	in, err := midi.InPort(0)
	if err != nil {
		fmt.Println("can't find a MIDI input port")
		return
	}

	var mu sync.Mutex
	var notes []model.NoteEvent
	onNotes := make(map[uint8]noteStart)

	// a flurry of note-offs triggers one rebuild, not one per note
	debounced := debounce.New(250 * time.Millisecond)
	rebuild := func() {
		mu.Lock()
		snapshot := make([]model.NoteEvent, len(notes))
		copy(snapshot, notes)
		mu.Unlock()

		res := segment.Build(model.Score{Notes: snapshot})
		fmt.Printf("%v notes -> %v blocks over %v quarters\n",
			len(snapshot), len(res.Blocks()), res.TotalDuration())
	}

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		// quarters at the default 60 qpm: one quarter per second
		q := float64(timestampms) / 1000

		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			mu.Lock()
			onNotes[key] = noteStart{q: q, velocity: vel}
			mu.Unlock()
		case msg.GetNoteEnd(&ch, &key):
			mu.Lock()
			on, held := onNotes[key]
			if held && q > on.q {
				delete(onNotes, key)
				notes = append(notes, model.NoteEvent{
					Start:     on.q,
					Length:    q - on.q,
					Pitch:     key,
					Intensity: on.velocity,
				})
			}
			mu.Unlock()
			debounced(rebuild)
		default:
			// ignore
		}
	})

	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}

	time.Sleep(time.Second * 5000)
	stop()
}

type noteStart struct {
	q        float64
	velocity uint8
}
