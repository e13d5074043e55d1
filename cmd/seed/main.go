// Command seed fills the database with sample service vouchers, each with a
// traveler, room allocations and a short itinerary. Every voucher goes through
// the same service call the API uses, so seeded data passes the same checks.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/travelops/operations/internal/config"
	"github.com/travelops/operations/internal/domain"
	"github.com/travelops/operations/internal/repo"
	"github.com/travelops/operations/internal/service"
)

func main() {
	count := flag.Int("n", 15, "number of vouchers to create")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	vouchers := service.NewVoucherService(repo.NewRepos(pool), repo.NewTxRunner(pool))
	created, err := run(ctx, vouchers, newGenerator(*seed), *count)
	if err != nil {
		slog.Error("seeding failed", "created", created, "error", err)
		os.Exit(1)
	}
	slog.Info("seeding finished", "created", created, "seed", *seed)
}

type voucherCreator interface {
	Create(ctx context.Context, p domain.ServiceVoucherPayload) (domain.ServiceVoucherDetail, error)
}

// run creates n vouchers. A rejected payload (for instance a reservation
// number left over from an earlier run) is logged and skipped; any other
// error stops the run.
func run(ctx context.Context, vouchers voucherCreator, g *generator, n int) (int, error) {
	created := 0
	for range n {
		d, err := vouchers.Create(ctx, g.voucher())
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			slog.Warn("sample voucher rejected", "fields", ve.Fields)
			continue
		case err != nil:
			return created, err
		}
		created++
		slog.Debug("voucher created", "id", d.ID, "reservation_number", d.ReservationNumber)
	}
	return created, nil
}

var (
	firstNames = []string{"Amelia", "Bruno", "Chloe", "Dmitri", "Elena", "Farid", "Grace", "Hiro", "Isla", "Jonas"}
	lastNames  = []string{"Alvarez", "Brennan", "Chen", "Dubois", "Eriksen", "Fontaine", "Gupta", "Hansen", "Ito", "Kowalski"}
	hotels     = []string{"Grand Hotel", "Sea View Resort", "Old Town Inn", "Harbour Lights", "Palm Court", "Alpine Lodge"}
	cities     = []string{"Lisbon", "Kyoto", "Cape Town", "Reykjavik", "Cusco", "Marrakesh"}
	phrases    = []string{
		"Airport pickup with name sign",
		"Guided walk through the historic centre",
		"Check in at the front desk",
		"Dinner at the hotel restaurant",
		"Afternoon at leisure",
		"Sunset boat trip",
		"Transfer to the railway station",
	}
)

// generator builds random but well-formed voucher payloads.
type generator struct {
	rng *rand.Rand
}

func newGenerator(seed uint64) *generator {
	return &generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func pick[T any](g *generator, items []T) T {
	return items[g.rng.IntN(len(items))]
}

func (g *generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// code fills a pattern: '?' becomes an uppercase letter, '#' a digit.
func (g *generator) code(pattern string) string {
	out := []byte(pattern)
	for i, c := range out {
		switch c {
		case '?':
			out[i] = byte('A' + g.rng.IntN(26))
		case '#':
			out[i] = byte('0' + g.rng.IntN(10))
		}
	}
	return string(out)
}

func (g *generator) voucher() domain.ServiceVoucherPayload {
	first, last := pick(g, firstNames), pick(g, lastNames)
	name := first + " " + last
	email := first + "." + last + "@example.com"
	phone := g.code("+1 ###-###-####")
	adults, infants := g.between(1, 4), g.between(0, 2)

	year := time.Now().Year()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, g.rng.IntN(365))
	end := start.AddDate(0, 0, g.between(1, 10))
	startStr, endStr := start.Format(time.DateOnly), end.Format(time.DateOnly)

	city := pick(g, cities)
	transfer := string(pick(g, domain.TransferTypes()))
	meal := string(pick(g, domain.MealPlans()))
	inclusions := "Daily breakfast, airport transfers, city tax"
	arrival := "Arrives " + startStr + " on an afternoon flight"
	departure := "Departs " + endStr + " from " + city
	meeting := "Arrivals hall, " + city + " airport"

	return domain.ServiceVoucherPayload{
		Traveler: &domain.TravelerPayload{
			Name:         &name,
			NumAdults:    &adults,
			NumInfants:   &infants,
			ContactEmail: &email,
			ContactPhone: &phone,
		},
		ReservationNumber:       ptr(g.code("???-#####")),
		HotelConfirmationNumber: ptr(g.code("CONF-#####")),
		TravelStartDate:         &startStr,
		TravelEndDate:           &endStr,
		HotelName:               ptr(pick(g, hotels)),
		TransferType:            &transfer,
		MealPlan:                &meal,
		Inclusions:              &inclusions,
		ArrivalDetails:          &arrival,
		DepartureDetails:        &departure,
		MeetingPoint:            &meeting,
		RoomAllocations:         ptr(g.rooms()),
		ItineraryItems:          ptr(g.itinerary(start, city)),
	}
}

// rooms includes each room type with even odds.
func (g *generator) rooms() []domain.RoomAllocationPayload {
	out := []domain.RoomAllocationPayload{}
	for _, rt := range domain.RoomTypes() {
		if g.rng.IntN(2) == 0 {
			continue
		}
		out = append(out, domain.RoomAllocationPayload{
			RoomType: ptr(string(rt)),
			Quantity: ptr(g.between(1, 3)),
		})
	}
	return out
}

func (g *generator) itinerary(start time.Time, city string) []domain.ItineraryPayload {
	days := g.between(1, 4)
	out := make([]domain.ItineraryPayload, days)
	for i := range out {
		acts := make([]domain.ActivityPayload, g.between(1, 3))
		for j := range acts {
			tod := domain.TimeOfDay{Hour: g.between(6, 22), Minute: 15 * g.rng.IntN(4)}
			acts[j] = domain.ActivityPayload{
				Time:         ptr(tod.String()),
				ActivityType: ptr(string(pick(g, domain.ActivityTypes()))),
				Description:  ptr(pick(g, phrases)),
				Location:     &city,
			}
		}
		out[i] = domain.ItineraryPayload{
			Day:        ptr(i + 1),
			Date:       ptr(start.AddDate(0, 0, i).Format(time.DateOnly)),
			Activities: &acts,
		}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
