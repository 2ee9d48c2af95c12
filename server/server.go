// Package server exposes edge routing and diagram rendering over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"flowedit/diagram"
	"flowedit/export"
	"flowedit/geometry"
	"flowedit/importer"
	"flowedit/routing"
)

// DefaultBodyLimit caps request bodies.
const DefaultBodyLimit = 4 << 20

// Config configures the service.
type Config struct {
	Logger    *slog.Logger
	BodyLimit int
}

// RouteRequest is the geometry of a single edge.
type RouteRequest struct {
	Mode          diagram.RoutingMode `json:"routingMode"`
	Source        geometry.Point      `json:"source"`
	Target        geometry.Point      `json:"target"`
	SourceSide    geometry.Side       `json:"sourceSide"`
	TargetSide    geometry.Side       `json:"targetSide"`
	Waypoints     []diagram.Waypoint  `json:"waypoints,omitempty"`
	LabelPosition *geometry.Point     `json:"labelPosition,omitempty"`
}

// RouteResponse is a routed edge.
type RouteResponse struct {
	Mode        diagram.RoutingMode `json:"routingMode"`
	Commands    []routing.Command   `json:"commands"`
	D           string              `json:"d"`
	LabelAnchor geometry.Point      `json:"labelAnchor"`
	Length      float64             `json:"length"`
}

func newRouteResponse(mode diagram.RoutingMode, r routing.Result) RouteResponse {
	return RouteResponse{
		Mode:        diagram.ParseRoutingMode(string(mode)),
		Commands:    r.Path.Commands,
		D:           r.Path.SVG(),
		LabelAnchor: r.LabelAnchor,
		Length:      r.Path.Length(),
	}
}

// New builds the fiber app with every route registered.
func New(cfg Config) *fiber.App {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	limit := cfg.BodyLimit
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:      "flowedit",
		BodyLimit:    limit,
		ErrorHandler: errorHandler,
	})
	app.Use(requestLogger(logger))

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ── Routing ───────────────────────────────────────────────────────
	app.Post("/route", func(c fiber.Ctx) error {
		var req RouteRequest
		if err := c.Bind().JSON(&req); err != nil {
			return badRequest(c, "invalid body")
		}
		e := diagram.Edge{
			Mode:          req.Mode,
			SourceSide:    req.SourceSide,
			TargetSide:    req.TargetSide,
			Waypoints:     req.Waypoints,
			LabelPosition: req.LabelPosition,
		}
		r := routing.RouteEdgeAt(e, req.Source, req.Target)
		return c.JSON(newRouteResponse(req.Mode, r))
	})

	app.Post("/routes", func(c fiber.Ctx) error {
		d, err := bindDiagram(c)
		if err != nil {
			return badRequest(c, err.Error())
		}
		out := make(map[string]RouteResponse, len(d.Edges))
		for _, e := range d.Edges {
			if r, ok := routing.RouteEdge(d, e); ok {
				out[e.ID] = newRouteResponse(e.Mode, r)
			}
		}
		return c.JSON(out)
	})

	// ── Documents ─────────────────────────────────────────────────────
	app.Post("/normalize", func(c fiber.Ctx) error {
		d, err := bindDiagram(c)
		if err != nil {
			return badRequest(c, err.Error())
		}
		return c.JSON(d)
	})

	app.Post("/import/:format?", func(c fiber.Ctx) error {
		registry := importer.NewImporterRegistry()
		var (
			d   *diagram.Diagram
			err error
		)
		if format := c.Params("format"); format != "" {
			d, err = registry.ImportWithFormat(string(c.Body()), format)
		} else {
			d, err = registry.Import(string(c.Body()))
		}
		if err != nil {
			return badRequest(c, err.Error())
		}
		return c.JSON(d)
	})

	app.Post("/render/:format", func(c fiber.Ctx) error {
		format, err := export.ParseFormat(c.Params("format"))
		if err != nil {
			return badRequest(c, err.Error())
		}
		d, err := bindDiagram(c)
		if err != nil {
			return badRequest(c, err.Error())
		}
		exp, err := export.NewExporter(format)
		if err != nil {
			return badRequest(c, err.Error())
		}
		data, err := exp.Export(d)
		if err != nil {
			logger.Error("render failed", "format", format, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set(fiber.HeaderContentType, export.ContentType(format))
		return c.Send(data)
	})

	return app
}

// bindDiagram decodes the request body as a diagram document, normalising
// its edges.
func bindDiagram(c fiber.Ctx) (*diagram.Diagram, error) {
	return diagram.Decode(c.Body())
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func requestLogger(logger *slog.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		logger.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"duration", time.Since(start),
		)
		return err
	}
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func ListenAndServe(ctx context.Context, addr string, cfg Config) error {
	app := New(cfg)
	errc := make(chan error, 1)
	go func() {
		errc <- app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return err
		}
		return <-errc
	}
}
