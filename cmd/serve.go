package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/midialign/constants"
	"github.com/jsphweid/midialign/matcher"
	"github.com/jsphweid/midialign/model"
	"github.com/jsphweid/midialign/report"
	"github.com/jsphweid/midialign/session"
	"github.com/jsphweid/midialign/track"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves alignment over HTTP",
	Long: `Serves POST /align (sorted run plus refinement) and POST /match
(one column per candidate) on MIDIALIGN_ADDR.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Could not write response: %v", err)
	}
}

func requestConfig(maxGap, maxUnmatched *int) session.Config {
	cfg := session.DefaultConfig()
	cfg.Options = matcher.Options{
		MaxGapSize:   constants.GetMaxGapSize(),
		MaxUnmatched: constants.GetMaxUnmatched(),
	}
	if maxGap != nil {
		cfg.Options.MaxGapSize = *maxGap
	}
	if maxUnmatched != nil {
		cfg.Options.MaxUnmatched = *maxUnmatched
	}
	return cfg
}

func keepAll(model.RawEvent) bool {
	return true
}

func toSequence(input []model.EventInput) ([]model.Event, error) {
	raw := make([]model.RawEvent, len(input))
	for i, in := range input {
		raw[i] = model.RawEvent{Kind: model.ParseKind(in.Kind), Value: in.Value, Delta: in.Delta}
	}
	return track.Normalize(raw, keepAll)
}

// writeSessionError maps bad options to 400 and anything else to 500.
func writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, matcher.ErrBadOptions) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("Alignment failed: %v", err)
	writeError(w, http.StatusInternalServerError, "alignment failed")
}

func HandleAlign(w http.ResponseWriter, r *http.Request) {
	var input model.AlignRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode request body: "+err.Error())
		return
	}

	cfg := requestConfig(input.MaxGapSize, input.MaxUnmatched)
	if err := cfg.Options.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	gold, err := toSequence(input.Gold)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "gold: "+err.Error())
		return
	}
	other, err := toSequence(input.Other)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "other: "+err.Error())
		return
	}

	refined, err := session.Refine(gold, other, cfg)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	tracks := map[uint32]string{0: "gold", 1: "other"}
	writeJSON(w, http.StatusOK, report.NewSortedJSON(refined.Sorted, refined, tracks))
}

func HandleMatch(w http.ResponseWriter, r *http.Request) {
	var input model.MatchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not decode request body: "+err.Error())
		return
	}
	if len(input.Others) == 0 {
		writeError(w, http.StatusBadRequest, "at least one candidate is required")
		return
	}

	cfg := requestConfig(input.MaxGapSize, input.MaxUnmatched)
	if err := cfg.Options.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	gold, err := toSequence(input.Gold)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "gold: "+err.Error())
		return
	}
	tracks := map[uint32]string{0: "gold"}
	others := make([][]model.Event, len(input.Others))
	for k, in := range input.Others {
		others[k], err = toSequence(in)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("other %d: %v", k+1, err))
			return
		}
		tracks[uint32(k+1)] = fmt.Sprintf("other %d", k+1)
	}

	blocks, err := session.Match(gold, others, cfg)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report.NewBlocksJSON(blocks, tracks))
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/align", HandleAlign).Methods("POST")
	router.HandleFunc("/match", HandleMatch).Methods("POST")
	return cors.Default().Handler(router)
}

func serve() error {
	addr := constants.GetListenAddr()
	log.Printf("Listening on %v", addr)
	return http.ListenAndServe(addr, NewRouter())
}
