package cmd

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/jsphweid/musicxml/constants"
	"github.com/jsphweid/musicxml/midi"
	"github.com/jsphweid/musicxml/model"
	"github.com/jsphweid/musicxml/mxl"
	"github.com/jsphweid/musicxml/translate"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves",
	Long:  `serves`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

// HandleConvert turns a MusicXML body into a MIDI rendering, returned
// base64-encoded with a fresh conversion id.
func HandleConvert(w http.ResponseWriter, r *http.Request) {
	doc, err := mxl.Parse(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	score, err := translate.ImportScore(doc, translate.Options{RecombineTies: true})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	var buf bytes.Buffer
	if err := midi.WriteSMF(score, &buf); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	json.NewEncoder(w).Encode(model.ConversionResponse{
		Id:   uuid.New().String(),
		Midi: buf.Bytes(),
	})
}

// HandleValidate runs the round-trip stability check on a MusicXML body.
func HandleValidate(w http.ResponseWriter, r *http.Request) {
	doc, err := mxl.Parse(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res := model.ValidationResponse{Valid: true, Parts: len(doc.Parts)}
	for _, part := range doc.Parts {
		res.Measures += len(part.Measures)
	}
	if err := validateDoc(doc); err != nil {
		res.Valid = false
		res.Detail = err.Error()
	}
	json.NewEncoder(w).Encode(res)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/validate", HandleValidate).Methods("POST")

	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(constants.GetPort(), handler))
}
