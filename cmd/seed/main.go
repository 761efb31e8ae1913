package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tourdesk/internal/database"
	"tourdesk/internal/domain"
	"tourdesk/internal/repository"
)

// Seeds a standalone-mode database with a small agency: four guides and a
// handful of bookings in assorted states, including an overlapping pair
// so the availability view has something to show.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "tourdesk.db"
	}
	agencyID := os.Getenv("AGENCY_ID")
	if agencyID == "" {
		agencyID = "agency-demo"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	repo := repository.NewPlatformStore(db)
	if err := repo.Migrate(); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	if err := repo.Reset(); err != nil {
		log.Fatal("Reset failed:", err)
	}

	ctx := context.Background()

	if err := repo.SetTierConfig(ctx, agencyID, domain.TierConfig{
		Tier:         domain.TierFree,
		BookingLimit: 3,
		GuideLimit:   5,
	}); err != nil {
		log.Fatal("Seed tier failed:", err)
	}

	guides := []domain.Guide{
		{Name: "Aigerim Seitova", Specialty: "mountain trekking", Languages: []string{"kk", "ru", "en"}, Email: "aigerim@example.com", BaseActive: true},
		{Name: "Marco Rossi", Specialty: "city history", Languages: []string{"it", "en"}, Email: "marco@example.com", BaseActive: true},
		{Name: "Lena Fischer", Specialty: "wine tours", Languages: []string{"de", "en", "fr"}, Email: "lena@example.com", BaseActive: true},
		{Name: "Omar Haddad", Specialty: "desert safari", Languages: []string{"ar", "en"}, Email: "omar@example.com", BaseActive: false},
	}

	ids := make([]string, 0, len(guides))
	for _, g := range guides {
		created, err := repo.CreateGuide(ctx, agencyID, g)
		if err != nil {
			log.Fatal("Seed guide failed:", err)
		}
		ids = append(ids, created.ID)
		log.Printf("guide %s -> %s", created.Name, created.ID)
	}

	day := func(offset int) *time.Time {
		t := time.Now().AddDate(0, 0, offset).Truncate(24 * time.Hour)
		return &t
	}

	bookings := []domain.Booking{
		{AgencyID: agencyID, Location: "Almaty highlands", GroupSize: 6, CheckIn: day(10), CheckOut: day(12), Status: domain.BookingAccepted, GuideIDs: []string{ids[0]}},
		{AgencyID: agencyID, Location: "Rome old town", GroupSize: 2, CheckIn: day(11), CheckOut: day(13), Status: domain.BookingPending},
		{AgencyID: agencyID, Location: "Rhine valley", GroupSize: 10, CheckIn: day(20), CheckOut: day(22), Status: domain.BookingPending},
		{AgencyID: agencyID, Location: "Dubai dunes", GroupSize: 4, Status: domain.BookingPending},
		{AgencyID: agencyID, Location: "Florence museums", GroupSize: 3, CheckIn: day(-5), CheckOut: day(-3), Status: domain.BookingCompleted, GuideIDs: []string{ids[1]}},
		{AgencyID: agencyID, Location: "Cancelled trip", GroupSize: 5, CheckIn: day(10), CheckOut: day(14), Status: domain.BookingCancelled, GuideIDs: []string{ids[2]}},
	}

	for _, b := range bookings {
		created, err := repo.CreateBooking(ctx, b)
		if err != nil {
			log.Fatal("Seed booking failed:", err)
		}
		log.Printf("booking %s [%s] -> %s", created.Location, created.Status, created.ID)
	}

	log.Println("Seed complete.")
}
