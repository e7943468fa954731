package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/0x0FACED/gridai/pkg/logger"
	"github.com/0x0FACED/gridai/pkg/render"
	"github.com/0x0FACED/gridai/pkg/voronoi"
	"github.com/0x0FACED/gridai/static"
	"go.uber.org/zap"
)

const (
	defaultWidth    = 1000
	defaultHeight   = 1000
	defaultStations = 12
	maxSide         = 5000
	maxStations     = 200
)

// diagramHandler serves the page with the diagram, the form and the sweep log.
func diagramHandler(w http.ResponseWriter, r *http.Request) {
	width := defaultWidth
	height := defaultHeight
	numStations := defaultStations
	var isRandom bool

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		width = positive(r.FormValue("width"), defaultWidth, maxSide)
		height = positive(r.FormValue("height"), defaultHeight, maxSide)
		numStations = positive(r.FormValue("stations"), defaultStations, maxStations)
		isRandom = r.FormValue("random") == "true"
	}

	var sites []voronoi.Vertex
	if isRandom {
		seed := uint64(time.Now().UnixNano())
		sites = randomSites(rand.New(rand.NewPCG(seed, seed)), numStations, width, height)
	} else {
		sites = gridSites(numStations, width, height)
	}

	bbox := voronoi.NewBoundingBox(0, float64(width), 0, float64(height))

	log := logger.New()
	defer log.ClearLogs()

	diagram, err := voronoi.CreateDiagram(r.Context(), sites, bbox, voronoi.WithLogger(log))
	if err != nil {
		log.Error("[serve] Diagram failed", zap.Error(err))
	}

	scatter := render.Chart(sites, diagram)

	fmt.Fprintln(w, static.Part1)

	if err := scatter.Render(w); err != nil {
		log.Error("[serve] Chart rendering failed", zap.Error(err))
	}

	fmt.Fprintln(w, static.Part2)
	fmt.Fprintln(w, log.HTML())
	fmt.Fprintln(w, static.Part3)
}

// snapshotHandler renders one scene as PNG. Query values override the
// defaults of the snapshot command.
func snapshotHandler(log *logger.ZapLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		s := scene{
			Kind:   q.Get("kind"),
			Width:  positive(q.Get("width"), 64, 512),
			Height: positive(q.Get("height"), 48, 512),
			Steps:  positive(q.Get("steps"), 50, 10000),
			Seed:   uint64(positive(q.Get("seed"), 1, 1<<31)),
			Scale:  positive(q.Get("scale"), 8, 32),
			Sites:  positive(q.Get("sites"), 24, maxStations),
		}
		if !slices.Contains(Kinds, s.Kind) {
			http.Error(w, fmt.Sprintf("kind must be one of %v", Kinds), http.StatusBadRequest)
			return
		}

		img, err := draw(r.Context(), s, log)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := render.Encode(w, img); err != nil {
			log.Error("[serve] Snapshot encoding failed", zap.Error(err))
		}
	}
}

// positive parses raw as a positive int no larger than limit.
func positive(raw string, fallback, limit int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return min(v, limit)
}

func newMux(log *logger.ZapLogger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", diagramHandler)
	mux.HandleFunc("/snapshot", snapshotHandler(log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "ok")
	})
	return mux
}
