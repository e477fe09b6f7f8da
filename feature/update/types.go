package update

import (
	"errors"

	"dat-manager/core/reconcile"
)

// Mode names one reconcile operation.
type Mode string

const (
	ModeMerge              Mode = "merge"
	ModeCascade            Mode = "cascade"
	ModeReverseCascade     Mode = "reverse-cascade"
	ModeAgainst            Mode = "against"
	ModeBaseReplace        Mode = "base-replace"
	ModeReverseBaseReplace Mode = "reverse-base-replace"
	ModeDupes              Mode = "dupes"
	ModeNoDupes            Mode = "no-dupes"
	ModeIndividuals        Mode = "individuals"
	ModeAll                Mode = "all"
	ModeSplit              Mode = "split"
)

// Modes lists every supported mode.
var Modes = []Mode{
	ModeMerge, ModeCascade, ModeReverseCascade, ModeAgainst, ModeBaseReplace,
	ModeReverseBaseReplace, ModeDupes, ModeNoDupes, ModeIndividuals, ModeAll, ModeSplit,
}

var (
	// ErrUnknownMode is returned for a mode not in Modes.
	ErrUnknownMode = errors.New("unknown update mode")
	// ErrNoInputs is returned when the inputs resolve to nothing.
	ErrNoInputs = errors.New("no inputs")
	// ErrNoBases is returned when a base mode runs without bases.
	ErrNoBases = errors.New("no base inputs")
	// ErrInvalidRequest wraps option errors in a request.
	ErrInvalidRequest = errors.New("invalid update request")
	// ErrLocalPath is returned when an HTTP request names a server-local
	// file instead of an s3:// or db:// input.
	ErrLocalPath = errors.New("local paths are not accepted over HTTP")
)

// ParseMode resolves a mode name.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == name {
			return m, nil
		}
	}
	return "", ErrUnknownMode
}

// needsBases reports whether the mode compares inputs with base catalogs.
func (m Mode) needsBases() bool {
	return m == ModeAgainst || m == ModeBaseReplace || m == ModeReverseBaseReplace
}

// Request describes one update run.
type Request struct {
	// Mode selects the operation.
	Mode Mode `json:"mode"`
	// Inputs are file paths, directories, s3://key, s3://prefix/ or db://name.
	Inputs []string `json:"inputs"`
	// Bases are the base catalogs for against and base-replace modes.
	Bases []string `json:"bases,omitempty"`

	// Name and Description override the combined header.
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	// Key overrides the configured bucket strategy.
	Key string `json:"key,omitempty"`
	// Strict requires full hash identity for duplicates.
	Strict bool `json:"strict,omitempty"`

	SuperDAT   bool     `json:"superdat,omitempty"`
	Dedupe     string   `json:"dedupe,omitempty"`
	SkipFirst  bool     `json:"skip_first,omitempty"`
	ByGame     bool     `json:"by_game,omitempty"`
	Fields     []string `json:"fields,omitempty"`
	OnlySame   bool     `json:"only_same,omitempty"`
	Extensions []string `json:"extensions,omitempty"`

	// Format overrides the configured output format.
	Format string `json:"output_format,omitempty"`
	// Prefix is prepended to output names.
	Prefix       string `json:"output_prefix,omitempty"`
	IgnoreBlanks bool   `json:"ignore_blanks,omitempty"`
	// DryRun plans without writing.
	DryRun bool `json:"dry_run,omitempty"`
	// Clean removes earlier outputs under the storage output prefix first.
	Clean bool `json:"clean,omitempty"`
}

// OutputInfo describes one planned output.
type OutputInfo struct {
	Name    string `json:"name"`
	Source  int    `json:"source"`
	Items   int64  `json:"items"`
	Removed int64  `json:"removed"`
	Groups  int    `json:"groups,omitempty"`
}

// Response is the result of an update run.
type Response struct {
	Mode     Mode                  `json:"mode"`
	Summary  reconcile.PlanSummary `json:"summary"`
	Outputs  []OutputInfo          `json:"outputs"`
	Written  int                   `json:"written"`
	Cleaned  int                   `json:"cleaned,omitempty"`
	Duration string                `json:"duration"`
}

func describe(plan *reconcile.Plan) []OutputInfo {
	infos := make([]OutputInfo, 0, len(plan.Outputs))
	for _, out := range plan.Outputs {
		stats := out.Dat.Items.Statistics()
		infos = append(infos, OutputInfo{
			Name:    out.Name,
			Source:  out.Source,
			Items:   stats.TotalCount - stats.RemovedCount,
			Removed: stats.RemovedCount,
			Groups:  out.Groups,
		})
	}
	return infos
}
