package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/calc"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/nec"
	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/service"
)

func Register(app *fiber.App, svcs *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	g := app.Group("/v1")

	g.Get("/kinds", func(c *fiber.Ctx) error {
		return c.JSON(service.Kinds())
	})

	g.Post("/calc/:kind", func(c *fiber.Ctx) error {
		calculation, err := svcs.Calculations.Calculate(c.UserContext(), domain.Kind(c.Params("kind")), c.Body())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(calculation)
	})

	g.Get("/limits", func(c *fiber.Ctx) error {
		l := svcs.Calculations.Limits()
		return c.JSON(fiber.Map{
			"branch_voltage_drop_percent": l.BranchDropPercent,
			"total_voltage_drop_percent":  l.TotalDropPercent,
		})
	})

	registerTables(g.Group("/tables"))

	g.Get("/calculations", func(c *fiber.Ctx) error {
		f := domain.ListFilter{
			Kind:   domain.Kind(c.Query("kind")),
			Limit:  c.QueryInt("limit"),
			Offset: c.QueryInt("offset"),
		}
		if f.Limit < 0 || f.Offset < 0 {
			return writeError(c, &calc.InvalidInputError{Field: "limit", Reason: "limit and offset must not be negative"})
		}
		items, err := svcs.Calculations.List(c.UserContext(), f)
		if err != nil {
			return writeError(c, err)
		}
		if items == nil {
			items = []domain.Calculation{}
		}
		return c.JSON(items)
	})

	g.Get("/calculations/:id", func(c *fiber.Ctx) error {
		item, err := svcs.Calculations.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(item)
	})

	g.Post("/calculations/:id/export", func(c *fiber.Ctx) error {
		url, err := svcs.Calculations.Export(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
	})
}

func registerTables(g fiber.Router) {
	g.Get("/conductors", func(c *fiber.Ctx) error {
		materials := []nec.Material{nec.Copper, nec.Aluminum}
		if raw := c.Query("material"); raw != "" {
			m, err := nec.ParseMaterial(raw)
			if err != nil {
				return writeError(c, &calc.InvalidInputError{Field: "material", Reason: err.Error()})
			}
			materials = []nec.Material{m}
		}
		var out []nec.ConductorSpec
		for _, m := range materials {
			out = append(out, nec.Conductors(m)...)
		}
		return c.JSON(out)
	})

	g.Get("/conduits", func(c *fiber.Ctx) error {
		types := nec.ConduitTypes()
		if raw := c.Query("type"); raw != "" {
			t, err := nec.ParseConduitType(raw)
			if err != nil {
				return writeError(c, &calc.InvalidInputError{Field: "type", Reason: err.Error()})
			}
			types = []nec.ConduitType{t}
		}
		out := fiber.Map{}
		for _, t := range types {
			out[string(t)] = nec.Conduits(t)
		}
		return c.JSON(out)
	})

	g.Get("/demand-rules", func(c *fiber.Ctx) error {
		return c.JSON(nec.DemandRules())
	})

	g.Get("/breakers", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"breakers": nec.StandardBreakerRatings,
			"services": nec.StandardServiceRatings,
		})
	})
}

func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, calc.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, calc.ErrNoSizeFound), errors.Is(err, calc.ErrUnsupportedConfiguration):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrUnknownKind), errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrHistoryDisabled), errors.Is(err, service.ErrExportDisabled):
		status = fiber.StatusNotImplemented
	}
	body := fiber.Map{"error": err.Error()}
	var invalid *calc.InvalidInputError
	if errors.As(err, &invalid) && !strings.EqualFold(invalid.Field, "body") {
		body["field"] = invalid.Field
	}
	return c.Status(status).JSON(body)
}
