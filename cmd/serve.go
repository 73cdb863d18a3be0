package cmd

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/flufy3d/jianpu/model"
	"github.com/flufy3d/jianpu/segment"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the segmentation engine over HTTP",
	Long:  `Serves the segmentation engine over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func HandleSegment(w http.ResponseWriter, r *http.Request) {
	var input model.SegmentRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(model.ErrorResponse{Error: "could not unmarshal request body: " + err.Error()})
		return
	}

	opts := segment.DefaultOptions()
	opts.AllowDottedRests = !input.NoDottedRests
	res := segment.BuildWithOptions(input.Score, opts)

	json.NewEncoder(w).Encode(res.Output())
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/segment", HandleSegment).Methods("POST")
	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(":8080", handler))
}
