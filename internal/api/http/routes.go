package httpapi

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/canaryfuel/fuel-price-dashboard/internal/fuel"
)

var validate = validator.New()

// RegisterRoutes wires the dashboard HTTP handlers into the Fiber app.
// topN is the default ranking size when the request does not provide one.
func RegisterRoutes(app *fiber.App, service *fuel.Service, topN int) {
	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		crit, err := parseCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rows, err := service.Dashboard(c.Context(), time.Now().UTC(), crit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read dashboard data")
		}

		return c.JSON(fiber.Map{
			"criteria": criteriaView(crit),
			"rows":     rows,
		})
	})

	v1.Get("/dashboard/kpis", func(c *fiber.Ctx) error {
		crit, err := parseCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		kpis, err := service.Kpis(c.Context(), time.Now().UTC(), crit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to compute kpis")
		}

		return c.JSON(fiber.Map{
			"criteria": criteriaView(crit),
			"kpis":     kpis,
		})
	})

	v1.Get("/dashboard/top", func(c *fiber.Ctx) error {
		crit, err := parseCriteria(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var q topQuery
		q.N = c.QueryInt("n", topN)
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ranking, err := service.TopCheapest(c.Context(), time.Now().UTC(), crit, q.N)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to compute ranking")
		}

		return c.JSON(fiber.Map{
			"criteria": criteriaView(crit),
			"n":        q.N,
			"stations": ranking,
		})
	})

	v1.Get("/dashboard/entities", func(c *fiber.Ctx) error {
		levelStr := c.Query("level", string(fuel.GeoAutonomousCommunity))
		level, err := fuel.ParseGeoLevel(levelStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		entities, err := service.Entities(c.Context(), time.Now().UTC(), level)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read entities")
		}

		return c.JSON(fiber.Map{
			"level":    level,
			"entities": entities,
		})
	})
}

// topQuery holds the validated ranking size.
type topQuery struct {
	N int `validate:"required,min=1,max=50"`
}

// parseCriteria binds the filter query parameters, falling back to the
// dashboard defaults for absent ones.
func parseCriteria(c *fiber.Ctx) (fuel.FilterCriteria, error) {
	crit := fuel.DefaultCriteria

	if v := c.Query("level"); v != "" {
		level, err := fuel.ParseGeoLevel(v)
		if err != nil {
			return crit, err
		}
		crit.GeoLevel = level
	}
	if v := c.Query("entity"); v != "" {
		crit.GeoEntity = v
	}
	if v := c.Query("brand"); v != "" {
		brand, err := fuel.ParseBrand(v)
		if err != nil {
			return crit, err
		}
		crit.Brand = brand
	}
	if v := c.Query("product"); v != "" {
		product, err := fuel.ParseProductGroup(v)
		if err != nil {
			return crit, err
		}
		crit.Product = product
	}

	return crit, nil
}

func criteriaView(crit fuel.FilterCriteria) fiber.Map {
	return fiber.Map{
		"level":   crit.GeoLevel,
		"entity":  crit.GeoEntity,
		"brand":   crit.Brand,
		"product": crit.Product,
	}
}
