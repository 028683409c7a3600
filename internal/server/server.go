// Package server implements the chronoidd HTTP service: variant catalog,
// minting, decoding, and parsing endpoints over chi and huma.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dilipvamsi/chrono-id/chronoid"
	"github.com/dilipvamsi/chrono-id/internal/config"
	"github.com/dilipvamsi/chrono-id/internal/metrics"
	"github.com/dilipvamsi/chrono-id/internal/registry"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxMintCount bounds how many IDs one mint request may ask for.
const maxMintCount = 1000

// Server is the chronoidd HTTP server.
type Server struct {
	cfg        *config.Config
	router     chi.Router
	api        huma.API
	reg        *registry.Store
	node       string
	httpServer *http.Server

	mu   sync.Mutex
	gens map[string]*chronoid.Generator
}

// ServerOption is a functional option for configuring the Server.
type ServerOption func(*Server)

// WithRegistry sets the persona registry. When present, generators are
// seeded from persisted personas so the node keeps its entropy lane
// across restarts.
func WithRegistry(reg *registry.Store) ServerOption {
	return func(s *Server) {
		s.reg = reg
	}
}

// New creates a new Server with the given configuration and wires up all
// routes on the Chi router with Huma API.
func New(cfg *config.Config, opts ...ServerOption) (*Server, error) {
	router := chi.NewMux()

	humaConfig := huma.DefaultConfig("Chrono-ID API", "1.0.0")
	humaConfig.DocsPath = "/docs"
	humaConfig.OpenAPIPath = "/openapi"
	api := humachi.New(router, humaConfig)

	s := &Server{
		cfg:    cfg,
		router: router,
		api:    api,
		node:   cfg.Generator.Node,
		gens:   make(map[string]*chronoid.Generator),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerRoutes()
	return s, nil
}

// ListenAndServe starts the HTTP server on the given address.
// The returned http.Server is stored so it can be shut down gracefully.
// Middleware chain: metricsMiddleware -> commonHeaders -> router.
func (s *Server) ListenAndServe(addr string) error {
	var handler http.Handler = s.router
	handler = commonHeaders(handler)
	handler = metricsMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: handler,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server, waiting for in-flight
// requests to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// generatorFor returns the generator for the variant, creating it on first
// use. With a registry attached the generator is seeded from the persisted
// persona for "<node>/<variant>".
func (s *Server) generatorFor(ctx context.Context, v *chronoid.Variant) (*chronoid.Generator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g, ok := s.gens[v.Name]; ok {
		return g, nil
	}

	var g *chronoid.Generator
	if s.reg != nil {
		key := s.node + "/" + v.Name
		rec, err := s.reg.LoadOrCreate(ctx, key, v.Name, chronoid.DefaultEntropy())
		if err != nil {
			return nil, fmt.Errorf("loading persona for %q: %w", key, err)
		}
		g = chronoid.NewGeneratorPersona(v, chronoid.DefaultEntropy(), rec.Persona, rec.NodeID)
		if count, err := s.reg.Count(ctx); err == nil {
			metrics.RegistryNodesTotal.Set(float64(count))
		}
	} else {
		g = chronoid.NewGenerator(v)
	}

	s.gens[v.Name] = g
	return g, nil
}

// ---- Wire types ----

// VariantInfo describes one catalog variant.
type VariantInfo struct {
	Name         string `json:"name" example:"UChrono64ms" doc:"Canonical variant name"`
	Width        uint8  `json:"width" example:"64" doc:"Total width in bits (32 or 64)"`
	Signed       bool   `json:"signed" doc:"Whether the top bit is reserved for a sign"`
	Epoch        string `json:"epoch" example:"2020-01-01" doc:"Epoch date (UTC)"`
	EpochSeconds uint64 `json:"epoch_seconds" doc:"Epoch as seconds since 1970-01-01"`
	Precision    string `json:"precision" example:"MS" doc:"Time unit mnemonic"`
	TimeBits     uint8  `json:"time_bits" doc:"Bits carrying elapsed time units"`
	NodeBits     uint8  `json:"node_bits" doc:"Bits carrying the node field"`
	SeqBits      uint8  `json:"seq_bits" doc:"Bits carrying the sequence field"`
}

// IDView is the wire representation of one decoded ID. Raw is a decimal
// string (the signed view for signed variants) so 64-bit values survive
// JSON number handling.
type IDView struct {
	Raw     string `json:"raw" example:"87104912692530709" doc:"Raw integer value, decimal"`
	Hex     string `json:"hex" example:"0135-79AC-1400-6615" doc:"Hyphenated uppercase hex"`
	ISO     string `json:"iso" example:"2022-08-11T02:21:26.837Z" doc:"Canonical ISO-8601 timestamp"`
	Units   uint64 `json:"units" doc:"Elapsed time units since the variant epoch"`
	Entropy uint64 `json:"entropy" doc:"Entropy bits below the time field"`
	Time    string `json:"time" doc:"Decoded UTC instant, RFC 3339"`
}

// HealthBody is the JSON body returned by the health check endpoint.
type HealthBody struct {
	Status string                 `json:"status" example:"ok" doc:"Health status"`
	Checks map[string]CheckResult `json:"checks,omitempty" doc:"Per-dependency checks"`
}

// CheckResult is the status of one health check dependency.
type CheckResult struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty"`
}

// HealthOutput is the Huma output struct for the health check endpoint.
type HealthOutput struct {
	Body HealthBody
}

type variantsOutput struct {
	Body struct {
		Variants []VariantInfo `json:"variants"`
	}
}

type mintInput struct {
	Body struct {
		Variant string `json:"variant" example:"UChrono64ms" doc:"Catalog variant name or alias"`
		Count   int    `json:"count,omitempty" minimum:"0" maximum:"1000" doc:"Number of IDs to mint (default 1)"`
		At      string `json:"at,omitempty" example:"2022-08-11T02:21:26.837Z" doc:"Mint for this ISO-8601 instant instead of now"`
	}
}

type mintOutput struct {
	Body struct {
		Variant string   `json:"variant"`
		IDs     []IDView `json:"ids"`
	}
}

type decodeInput struct {
	Variant string `path:"variant" example:"UChrono64ms"`
	Raw     string `path:"raw" example:"87104912692530709" doc:"Raw integer, decimal (signed accepted for signed variants)"`
}

type idOutput struct {
	Body IDView
}

type parseInput struct {
	Body struct {
		Variant string `json:"variant" example:"UChrono64ms"`
		ISO     string `json:"iso,omitempty" example:"2022-08-11T02:21:26.837Z" doc:"ISO-8601 timestamp to encode"`
		Hex     string `json:"hex,omitempty" example:"0135-79AC-1400-6615" doc:"Hyphenated hex to decode"`
	}
}

// ---- Routes ----

// registerRoutes configures all routes on the Chi router. Huma operations
// get OpenAPI documentation for free; /metrics stays a plain promhttp handler.
func (s *Server) registerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the chronoidd server.",
		Tags:        []string{"System"},
	}, s.handleHealth)

	// Register HEAD /health separately (Huma only does one method per registration).
	s.router.Head("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	})

	s.router.Handle("/metrics", promhttp.Handler())

	huma.Register(s.api, huma.Operation{
		OperationID: "list-variants",
		Method:      http.MethodGet,
		Path:        "/v1/variants",
		Summary:     "List variants",
		Description: "Lists all catalog variants with their bit layouts.",
		Tags:        []string{"Variants"},
	}, s.handleVariants)

	huma.Register(s.api, huma.Operation{
		OperationID: "mint-ids",
		Method:      http.MethodPost,
		Path:        "/v1/ids",
		Summary:     "Mint IDs",
		Description: "Mints one or more IDs for a variant, at the current instant or a given timestamp.",
		Tags:        []string{"IDs"},
	}, s.handleMint)

	huma.Register(s.api, huma.Operation{
		OperationID: "decode-id",
		Method:      http.MethodGet,
		Path:        "/v1/ids/{variant}/{raw}",
		Summary:     "Decode an ID",
		Description: "Decodes a raw integer into its time units, entropy, timestamp, and hex form.",
		Tags:        []string{"IDs"},
	}, s.handleDecode)

	huma.Register(s.api, huma.Operation{
		OperationID: "parse-id",
		Method:      http.MethodPost,
		Path:        "/v1/parse",
		Summary:     "Parse a timestamp or hex string",
		Description: "Parses an ISO-8601 timestamp or hyphenated hex string into an ID.",
		Tags:        []string{"IDs"},
	}, s.handleParse)
}

func (s *Server) handleHealth(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{Body: HealthBody{Status: "ok"}}
	if s.reg != nil {
		check := CheckResult{Status: "ok"}
		if _, err := s.reg.Count(ctx); err != nil {
			check = CheckResult{Status: "error", Error: err.Error()}
			out.Body.Status = "degraded"
		}
		out.Body.Checks = map[string]CheckResult{"registry": check}
	}
	return out, nil
}

func (s *Server) handleVariants(ctx context.Context, _ *struct{}) (*variantsOutput, error) {
	out := &variantsOutput{}
	for _, v := range chronoid.Variants() {
		out.Body.Variants = append(out.Body.Variants, variantInfo(v))
	}
	return out, nil
}

func (s *Server) handleMint(ctx context.Context, in *mintInput) (*mintOutput, error) {
	v, ok := chronoid.Lookup(in.Body.Variant)
	if !ok {
		return nil, huma.Error400BadRequest(fmt.Sprintf("unknown variant: %s", in.Body.Variant))
	}

	count := in.Body.Count
	if count <= 0 {
		count = 1
	}
	if count > maxMintCount {
		return nil, huma.Error400BadRequest(fmt.Sprintf("count %d exceeds maximum %d", count, maxMintCount))
	}

	var at time.Time
	if in.Body.At != "" {
		// Validate the instant through the variant's own parser so underflow
		// reporting matches the codec.
		id, err := v.FromISOEntropy(in.Body.At, 0)
		if err != nil {
			return nil, codecError(err)
		}
		at = id.Time()
	}

	g, err := s.generatorFor(ctx, v)
	if err != nil {
		return nil, huma.Error500InternalServerError("generator unavailable", err)
	}

	out := &mintOutput{}
	out.Body.Variant = v.Name
	out.Body.IDs = make([]IDView, 0, count)
	for i := 0; i < count; i++ {
		var id chronoid.ID
		var genErr error
		if in.Body.At != "" {
			id, genErr = g.NextAt(at)
		} else {
			id, genErr = g.Next()
		}
		if genErr != nil {
			return nil, codecError(genErr)
		}
		out.Body.IDs = append(out.Body.IDs, idView(id))
	}
	metrics.IDsGeneratedTotal.WithLabelValues(v.Name).Add(float64(count))
	return out, nil
}

func (s *Server) handleDecode(ctx context.Context, in *decodeInput) (*idOutput, error) {
	v, ok := chronoid.Lookup(in.Variant)
	if !ok {
		return nil, huma.Error404NotFound(fmt.Sprintf("unknown variant: %s", in.Variant))
	}

	var id chronoid.ID
	if v.Signed {
		raw, err := strconv.ParseInt(in.Raw, 10, 64)
		if err != nil {
			return nil, huma.Error400BadRequest(fmt.Sprintf("invalid raw value: %s", in.Raw))
		}
		id = v.FromInt64(raw)
	} else {
		raw, err := strconv.ParseUint(in.Raw, 10, 64)
		if err != nil {
			return nil, huma.Error400BadRequest(fmt.Sprintf("invalid raw value: %s", in.Raw))
		}
		id = v.FromRaw(raw)
	}

	return &idOutput{Body: idView(id)}, nil
}

func (s *Server) handleParse(ctx context.Context, in *parseInput) (*idOutput, error) {
	v, ok := chronoid.Lookup(in.Body.Variant)
	if !ok {
		return nil, huma.Error400BadRequest(fmt.Sprintf("unknown variant: %s", in.Body.Variant))
	}

	hasISO := in.Body.ISO != ""
	hasHex := in.Body.Hex != ""
	if hasISO == hasHex {
		return nil, huma.Error400BadRequest("exactly one of iso or hex is required")
	}

	var (
		id    chronoid.ID
		err   error
		codec string
	)
	if hasISO {
		codec = "iso"
		id, err = v.FromISO(in.Body.ISO)
	} else {
		codec = "hex"
		id, err = v.FromHex(in.Body.Hex)
	}
	if err != nil {
		metrics.ParseTotal.WithLabelValues(codec, "error").Inc()
		return nil, codecError(err)
	}
	metrics.ParseTotal.WithLabelValues(codec, "success").Inc()

	return &idOutput{Body: idView(id)}, nil
}

// ---- Helpers ----

// codecError maps chronoid codec errors onto HTTP problem responses:
// malformed input is a 400, a well-formed but out-of-range timestamp is a 422.
func codecError(err error) error {
	var cerr *chronoid.Error
	if errors.As(err, &cerr) {
		if errors.Is(err, chronoid.ErrTimestampUnderflow) {
			return huma.Error422UnprocessableEntity(cerr.Message)
		}
		return huma.Error400BadRequest(cerr.Message)
	}
	return huma.Error400BadRequest(err.Error())
}

func variantInfo(v *chronoid.Variant) VariantInfo {
	return VariantInfo{
		Name:         v.Name,
		Width:        v.Width,
		Signed:       v.Signed,
		Epoch:        v.EpochDate(),
		EpochSeconds: v.EpochSeconds,
		Precision:    v.Precision.String(),
		TimeBits:     v.TimeBits(),
		NodeBits:     v.NodeBits,
		SeqBits:      v.SeqBits,
	}
}

func idView(id chronoid.ID) IDView {
	v := id.Variant()
	raw := strconv.FormatUint(id.Raw(), 10)
	if v.Signed {
		raw = strconv.FormatInt(id.Int64(), 10)
	}
	return IDView{
		Raw:     raw,
		Hex:     id.Hex(),
		ISO:     id.ISO(),
		Units:   id.Units(),
		Entropy: id.Entropy(),
		Time:    id.Time().UTC().Format(time.RFC3339Nano),
	}
}
