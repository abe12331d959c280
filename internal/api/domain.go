package api

import (
	"github.com/veridict/veridict/internal/analyses"
	"github.com/veridict/veridict/internal/analyze"
	"github.com/veridict/veridict/internal/detect"
	"github.com/veridict/veridict/internal/pipeline"
	"github.com/veridict/veridict/internal/probe"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Analyses analyses.System
	Analyze  analyze.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	analysesSystem := analyses.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	p := pipeline.New(pipeline.Options{
		Images:      imageProber(runtime),
		Video:       probe.NewFFProbe(runtime.Analysis.FFProbePath, runtime.Analysis.ProbeTimeoutDuration()),
		Bank:        detect.NewBank(runtime.Analysis.Detect),
		Logger:      runtime.Logger,
		Workers:     runtime.Analysis.Workers,
		ItemTimeout: runtime.Analysis.ItemTimeoutDuration(),
	})

	analyzeSystem := analyze.New(p, analysesSystem, runtime.Logger)

	return &Domain{
		Analyses: analysesSystem,
		Analyze:  analyzeSystem,
	}
}

func imageProber(runtime *Runtime) probe.Prober {
	if runtime.Analysis.ImageProber == "exiftool" {
		return probe.NewExifTool(
			runtime.Analysis.ExifToolPath,
			runtime.Analysis.ProbeTimeoutDuration(),
		)
	}
	return probe.NewNative()
}
