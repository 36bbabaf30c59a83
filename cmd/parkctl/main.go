// Command parkctl is the headless CLI client for the parking reservation
// service. Credentials persist across invocations in the configured store, so
// a login survives until logout or terminal refresh failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/parkwise/parking-client/internal/core/domain"
	"github.com/parkwise/parking-client/internal/core/ports"
	"github.com/parkwise/parking-client/internal/core/service"
	"github.com/parkwise/parking-client/internal/infrastructure/api"
	"github.com/parkwise/parking-client/internal/infrastructure/config"
	"github.com/parkwise/parking-client/internal/infrastructure/store"
	"github.com/parkwise/parking-client/pkg/logger"
)

const usage = `usage: parkctl <command> [flags]

commands:
  login      -u <username> -p <password> [-role user|admin]
  register   -u <username> -p <password> [-email ...] [-name ...] [-vehicle ...]
  logout
  whoami
  lots
  status
  book       -lot <id> [-vehicle <number>]
  release
  history
  stats
  export     [-out <file>]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	session := service.NewSession(store.NewFile(cfg.Store.Path, cfg.Store.Passphrase), log)
	dispatcher := api.NewDispatcher(api.DispatcherConfig{
		BaseURL:     cfg.APIBaseURL,
		Credentials: session,
		Timeout:     cfg.RequestTimeout,
		Logger:      log,
		OnSessionEnd: func() {
			fmt.Fprintln(os.Stderr, "session expired, run `parkctl login` again")
		},
	})
	client := api.NewClient(dispatcher, session, log)

	ctx := context.Background()
	app := &app{client: client, session: session}

	var err error
	switch cmd := os.Args[1]; cmd {
	case "login":
		err = app.login(ctx, os.Args[2:])
	case "register":
		err = app.register(ctx, os.Args[2:])
	case "logout":
		err = app.client.Logout(ctx)
	case "whoami":
		err = app.whoami()
	case "lots":
		err = app.lots(ctx)
	case "status":
		err = app.status(ctx)
	case "book":
		err = app.book(ctx, os.Args[2:])
	case "release":
		err = app.release(ctx)
	case "history":
		err = app.history(ctx)
	case "stats":
		err = app.stats(ctx)
	case "export":
		err = app.export(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "parkctl:", err)
		os.Exit(1)
	}
}

type app struct {
	client  *api.Client
	session *service.Session
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	role := fs.String("role", domain.RoleUser, "account role (user or admin)")
	_ = fs.Parse(args)

	cred, err := a.client.Login(ctx, *username, *password, *role)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", cred.User.Username, cred.Role())
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	email := fs.String("email", "", "email address")
	name := fs.String("name", "", "full name")
	vehicle := fs.String("vehicle", "", "vehicle number")
	_ = fs.Parse(args)

	cred, err := a.client.Register(ctx, ports.RegisterInput{
		Username:      *username,
		Password:      *password,
		Email:         *email,
		FullName:      *name,
		VehicleNumber: *vehicle,
	})
	if err != nil {
		return err
	}
	fmt.Printf("registered and logged in as %s\n", cred.User.Username)
	return nil
}

func (a *app) whoami() error {
	state := a.session.State()
	if !state.Authenticated {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s (%s)\n", state.User.Username, state.Role)
	if !state.TokenExpiry.IsZero() {
		fmt.Printf("token expires %s\n", state.TokenExpiry.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *app) lots(ctx context.Context) error {
	lots, err := a.client.PublicLots(ctx)
	if err != nil {
		return err
	}
	for _, lot := range lots {
		fmt.Printf("%3d  %-30s  %6.2f/hr  %d/%d free\n",
			lot.ID, lot.Name, lot.PricePerHour, lot.AvailableSpots, lot.NumberOfSpots)
	}
	return nil
}

// status shows the active booking with its live meter. The printed cost is
// an estimate; the binding figure comes from the server on release.
func (a *app) status(ctx context.Context) error {
	active, err := a.client.ActiveBookings(ctx)
	if err != nil {
		return err
	}
	if len(active) == 0 {
		fmt.Println("no active booking")
		return nil
	}

	lots, err := a.client.PublicLots(ctx)
	if err != nil {
		return err
	}
	rates := make(map[int]float64, len(lots))
	for _, lot := range lots {
		rates[lot.ID] = lot.PricePerHour
	}

	now := time.Now().UTC()
	for _, b := range active {
		hours, minutes := service.Elapsed(b, now)
		fmt.Printf("booking %d: spot %d at %s, parked %dh%02dm, estimated cost %.2f\n",
			b.ID, b.SpotID, b.LotName, hours, minutes, service.EstimatedCost(b, now, rates[b.LotID]))
	}
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	lotID := fs.Int("lot", 0, "parking lot id")
	vehicle := fs.String("vehicle", "", "vehicle number (defaults to profile)")
	_ = fs.Parse(args)

	result, err := a.client.Book(ctx, ports.BookInput{LotID: *lotID, VehicleNumber: *vehicle})
	if err != nil {
		return err
	}
	fmt.Printf("booked spot %d in lot %d (booking %d)\n",
		result.Spot.ID, result.Spot.LotID, result.Booking.ID)
	return nil
}

func (a *app) release(ctx context.Context) error {
	active, err := a.client.ActiveBookings(ctx)
	if err != nil {
		return err
	}
	if len(active) == 0 {
		return domain.ErrNoActiveBooking
	}

	result, err := a.client.Release(ctx, active[0].ID)
	if err != nil {
		return err
	}
	fmt.Printf("released after %.2f hours, final cost %.2f\n", result.DurationHours, result.FinalCost)
	return nil
}

func (a *app) history(ctx context.Context) error {
	history, err := a.client.History(ctx)
	if err != nil {
		return err
	}
	for _, b := range history {
		end, cost := "active", "-"
		if b.LeavingTimestamp != nil {
			end = b.LeavingTimestamp.Format("2006-01-02 15:04")
		}
		if b.FinalCost != nil {
			cost = fmt.Sprintf("%.2f", *b.FinalCost)
		}
		fmt.Printf("%4d  %-20s  %s → %s  %s\n",
			b.ID, b.LotName, b.ParkingTimestamp.Format("2006-01-02 15:04"), end, cost)
	}
	return nil
}

func (a *app) stats(ctx context.Context) error {
	stats, err := a.client.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("bookings: %d total, %d active, %d completed\n",
		stats.TotalBookings, stats.ActiveBookings, stats.CompletedBookings)
	fmt.Printf("spent %.2f over %.1f hours\n", stats.TotalSpent, stats.TotalHours)
	for lot, count := range stats.LotUsage {
		fmt.Printf("  %-30s %d\n", lot, count)
	}
	return nil
}

// export triggers a history export, polls until the job settles, and writes
// the CSV locally.
func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "parking_history.csv", "output file")
	_ = fs.Parse(args)

	job, err := a.client.TriggerExport(ctx)
	if err != nil {
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	for !job.Done() {
		select {
		case <-waitCtx.Done():
			return fmt.Errorf("export %d still %s after waiting", job.ID, job.Status)
		case <-time.After(2 * time.Second):
		}
		job, err = a.client.ExportStatus(waitCtx, job.ID)
		if err != nil {
			return err
		}
	}
	if job.Status != domain.ExportCompleted {
		return fmt.Errorf("export %d ended as %s", job.ID, job.Status)
	}

	data, _, err := a.client.DownloadExport(ctx, job.ID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", *out, len(data))
	return nil
}
