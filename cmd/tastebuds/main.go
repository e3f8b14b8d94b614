// cmd/tastebuds/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tastebuds-client/internal/cache"
	"tastebuds-client/internal/common/config"
	apierrors "tastebuds-client/internal/common/errors"
	"tastebuds-client/internal/common/logger"
	"tastebuds-client/internal/common/observability"
	"tastebuds-client/internal/common/session"
	"tastebuds-client/pkg/tastebuds"
)

type app struct {
	cfg    *config.Config
	log    logger.Logger
	store  *session.Store
	client *tastebuds.Client
	cache  *cache.Cache
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	store := session.NewStore(cfg.Session.Path)
	client := tastebuds.New(cfg.API.BaseURL, store,
		tastebuds.WithTimeout(cfg.API.GetTimeout()),
		tastebuds.WithLogger(log),
	)

	a := &app{cfg: cfg, log: log, store: store, client: client}

	ctx := context.Background()

	if cfg.Cache.Enabled {
		respCache, err := cache.New(ctx, cfg.Cache.Address, cfg.Cache.Password, cfg.Cache.DB, cfg.Cache.GetTTL(), log)
		if err != nil {
			// Degrade to uncached operation rather than failing the command.
			log.Warn("response cache unavailable", map[string]interface{}{"error": err.Error()})
		} else {
			a.cache = respCache
			defer respCache.Close()
		}
	}

	start := time.Now()
	err = a.run(ctx, command, args)
	obs.RecordCommandDuration(ctx, command, time.Since(start))

	if err != nil {
		obs.RecordCommand(ctx, command, "error")
		a.reportError(command, err)
		os.Exit(1)
	}
	obs.RecordCommand(ctx, command, "ok")
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		return a.logout()
	case "whoami":
		return a.whoami(ctx)
	case "quiz":
		return a.quiz(ctx)
	case "dna":
		return a.dna(ctx)
	case "card":
		return a.card(ctx)
	case "twins":
		return a.twins(ctx, args)
	case "lucky":
		return a.lucky(ctx, args)
	case "trending":
		return a.trending(ctx, args)
	case "compare":
		return a.compare(ctx, args)
	case "search":
		return a.search(ctx, args)
	case "show":
		return a.show(ctx, args)
	case "reviews":
		return a.reviews(ctx, args)
	case "save":
		return a.save(ctx, args)
	case "saved":
		return a.saved(ctx)
	case "compat":
		return a.compat(ctx, args)
	case "datenight":
		return a.datenight(ctx, args)
	case "challenges":
		return a.challenges(ctx)
	case "join":
		return a.join(ctx, args)
	case "progress":
		return a.progress(ctx, args)
	case "leaderboard":
		return a.leaderboard(ctx, args)
	case "achievements":
		return a.achievements(ctx)
	case "chat":
		return a.chat(ctx, args)
	case "ask":
		return a.ask(ctx, args)
	case "recommend":
		return a.recommend(ctx, args)
	case "image-search":
		return a.imageSearch(ctx, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// reportError keeps failures readable: a typed API error prints its kind and
// message, anything else prints as-is. A failed call never crashes the CLI.
func (a *app) reportError(command string, err error) {
	if apiErr, ok := apierrors.AsAPIError(err); ok {
		a.log.Error("command failed", map[string]interface{}{
			"command":   command,
			"kind":      string(apiErr.Kind),
			"status":    apiErr.StatusCode,
			"requestId": apiErr.RequestID,
		})
		fmt.Fprintf(os.Stderr, "%s: %s (%s)\n", command, apiErr.Message, apiErr.Kind)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", command, err)
}

// ==========================
// Auth commands
// ==========================

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("-email and -password are required")
	}

	resp, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.store.Save(resp.AccessToken, resp.User); err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", resp.User.Name, resp.User.Email)
	if !resp.User.QuizCompleted {
		fmt.Println("Taste quiz not completed yet — run 'tastebuds quiz'.")
	}
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	name := fs.String("name", "", "display name")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *email == "" || *name == "" || *password == "" {
		return fmt.Errorf("-email, -name and -password are required")
	}

	resp, err := a.client.Register(ctx, *email, *name, *password)
	if err != nil {
		return err
	}
	if err := a.store.Save(resp.AccessToken, resp.User); err != nil {
		return err
	}

	fmt.Printf("Registered %s — welcome to TasteBuds!\n", resp.User.Email)
	return nil
}

func (a *app) logout() error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.client.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return printJSON(user)
}

// ==========================
// Taste DNA commands
// ==========================

func (a *app) quiz(ctx context.Context) error {
	resp, err := a.client.Quiz(ctx)
	if err != nil {
		return err
	}

	for i, q := range resp.Questions {
		fmt.Printf("%2d. [%s] %s\n", i+1, q.Type, q.Question)
		for _, opt := range q.Options {
			fmt.Printf("      - %s\n", opt.Label)
		}
	}
	fmt.Printf("%d questions. Answer via the web app or submit answers programmatically.\n", len(resp.Questions))
	return nil
}

func (a *app) dna(ctx context.Context) error {
	dna, err := a.client.TasteDNAProfile(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Adventure:         %.0f%%\n", dna.AdventureScore*100)
	fmt.Printf("Spice tolerance:   %.0f%%\n", dna.SpiceTolerance*100)
	fmt.Printf("Price sensitivity: %.0f%%\n", dna.PriceSensitivity*100)
	fmt.Printf("Cuisine diversity: %.0f%%\n", dna.CuisineDiversity*100)
	fmt.Printf("Preferred cuisines: %s\n", strings.Join(dna.PreferredCuisines, ", "))
	if len(dna.DietaryRestrictions) > 0 {
		fmt.Printf("Dietary restrictions: %s\n", strings.Join(dna.DietaryRestrictions, ", "))
	}
	return nil
}

func (a *app) card(ctx context.Context) error {
	card, err := a.client.TasteDNACard(ctx)
	if err != nil {
		return err
	}
	fmt.Println(card.ShareText)
	if card.CardImageURL != "" {
		fmt.Println(card.CardImageURL)
	}
	return nil
}

// ==========================
// Twins & discovery commands
// ==========================

func (a *app) twins(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("twins", flag.ExitOnError)
	refresh := fs.Bool("refresh", false, "recompute the twin match set")
	countOnly := fs.Bool("count", false, "print only the twin count")
	fs.Parse(args)

	if *countOnly {
		count, err := a.client.TwinCount(ctx)
		if err != nil {
			return err
		}
		fmt.Println(count)
		return nil
	}

	var resp *tastebuds.TwinsResponse
	var err error
	if *refresh {
		resp, err = a.client.RefreshTwins(ctx)
	} else {
		resp, err = a.client.Twins(ctx)
	}
	if err != nil {
		return err
	}

	for _, twin := range resp.Twins {
		fmt.Printf("%-24s %3.0f%% match  shared: %s\n",
			twin.Name, twin.SimilarityScore*100, strings.Join(twin.SharedCuisines, ", "))
	}
	fmt.Printf("%d taste twins\n", resp.TotalCount)
	return nil
}

func (a *app) lucky(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("lucky", flag.ExitOnError)
	location := fs.String("location", "", "where to search")
	fs.Parse(args)
	if *location == "" {
		return fmt.Errorf("-location is required")
	}

	resp, err := a.client.FeelingLucky(ctx, *location)
	if err != nil {
		return err
	}

	fmt.Printf("%s — %.1f★ (%s)\n", resp.Name, resp.Rating, resp.Price)
	fmt.Println(resp.Explanation)
	for _, rec := range resp.TwinRecommendations {
		fmt.Printf("  %s (%.0f%% similar): %s\n", rec.TwinName, rec.Similarity*100, rec.Comment)
	}
	return nil
}

func (a *app) trending(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trending", flag.ExitOnError)
	location := fs.String("location", "", "where to search")
	fs.Parse(args)
	if *location == "" {
		return fmt.Errorf("-location is required")
	}

	key := cache.Key("trending", *location)
	var resp tastebuds.TrendingResponse
	if a.cache == nil || !a.cache.Get(ctx, "trending", key, &resp) {
		fresh, err := a.client.Trending(ctx, *location)
		if err != nil {
			return err
		}
		resp = *fresh
		if a.cache != nil {
			a.cache.Set(ctx, key, resp)
		}
	}

	for _, r := range resp.Trending {
		fmt.Printf("%-32s %.1f★  %d twin visits\n", r.Name, r.Rating, r.TwinVisits)
	}
	return nil
}

func (a *app) compare(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	location := fs.String("location", "", "where to search")
	limit := fs.Int("limit", 3, "number of candidates")
	fs.Parse(args)
	if *location == "" {
		return fmt.Errorf("-location is required")
	}

	resp, err := a.client.Compare(ctx, *location, *limit)
	if err != nil {
		return err
	}
	printRestaurants(resp.Restaurants)
	return nil
}

// ==========================
// Restaurant commands
// ==========================

func (a *app) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	location := fs.String("location", "", "where to search (required)")
	term := fs.String("term", "", "search term")
	limit := fs.Int("limit", 0, "max results")
	offset := fs.Int("offset", 0, "pagination offset")
	price := fs.String("price", "", "price tiers, e.g. 1,2")
	categories := fs.String("categories", "", "category aliases")
	openNow := fs.Bool("open-now", false, "only open restaurants")
	fs.Parse(args)
	if *location == "" {
		return fmt.Errorf("-location is required")
	}

	params := tastebuds.SearchParams{
		Location:   *location,
		Term:       *term,
		Limit:      *limit,
		Offset:     *offset,
		Price:      *price,
		Categories: *categories,
		OpenNow:    *openNow,
	}

	key := cache.Key("search", *location, *term, *price, *categories,
		fmt.Sprintf("%d:%d:%t", *limit, *offset, *openNow))
	var resp tastebuds.SearchResponse
	if a.cache == nil || !a.cache.Get(ctx, "search", key, &resp) {
		fresh, err := a.client.SearchRestaurants(ctx, params)
		if err != nil {
			return err
		}
		resp = *fresh
		if a.cache != nil {
			a.cache.Set(ctx, key, resp)
		}
	}

	printRestaurants(resp.Businesses)
	fmt.Printf("%d total results\n", resp.Total)
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: show <restaurant-id>")
	}

	detail, err := a.client.Restaurant(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(detail)
}

func (a *app) reviews(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: reviews <restaurant-id>")
	}

	resp, err := a.client.RestaurantReviews(ctx, args[0])
	if err != nil {
		return err
	}
	for _, review := range resp.Reviews {
		fmt.Printf("%.0f★ %s — %s\n", review.Rating, review.User.Name, review.Text)
	}
	fmt.Printf("%d reviews\n", resp.Total)
	return nil
}

func (a *app) save(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	notes := fs.String("notes", "", "optional notes")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("usage: save [-notes ...] <restaurant-id>")
	}

	resp, err := a.client.SaveRestaurant(ctx, rest[0], *notes)
	if err != nil {
		return err
	}
	fmt.Printf("%s (saved at %s)\n", resp.Message, resp.SavedAt)
	return nil
}

func (a *app) saved(ctx context.Context) error {
	list, err := a.client.SavedRestaurants(ctx)
	if err != nil {
		return err
	}
	for _, s := range list {
		line := fmt.Sprintf("%-32s saved %s", s.RestaurantName, s.SavedAt)
		if s.Notes != "" {
			line += "  (" + s.Notes + ")"
		}
		fmt.Println(line)
	}
	return nil
}

// ==========================
// Date night & gamification commands
// ==========================

func (a *app) compat(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: compat <partner-id>")
	}

	resp, err := a.client.Compatibility(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Compatibility: %.0f%%\n", resp.CompatibilityScore*100)
	fmt.Printf("Shared: %s\n", strings.Join(resp.SharedCuisines, ", "))
	fmt.Printf("Compromises: %s\n", strings.Join(resp.CompromiseCuisines, ", "))
	fmt.Println(resp.Analysis)
	return nil
}

func (a *app) datenight(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("datenight", flag.ExitOnError)
	partner := fs.String("partner", "", "partner user id")
	location := fs.String("location", "", "where to search")
	fs.Parse(args)
	if *partner == "" || *location == "" {
		return fmt.Errorf("-partner and -location are required")
	}

	resp, err := a.client.DateNightSuggestions(ctx, *partner, *location)
	if err != nil {
		return err
	}

	fmt.Println("Perfect matches:")
	printRestaurants(resp.PerfectMatches)
	fmt.Println("You will love:")
	printRestaurants(resp.YouWillLove)
	fmt.Println("They will love:")
	printRestaurants(resp.TheyWillLove)
	return nil
}

func (a *app) challenges(ctx context.Context) error {
	resp, err := a.client.Challenges(ctx)
	if err != nil {
		return err
	}

	for _, cp := range resp.ActiveChallenges {
		fmt.Printf("[%s] %s — %d/%d (+%d pts)\n",
			cp.Challenge.ID, cp.Challenge.Title, cp.Progress, cp.Challenge.TargetCount, cp.Challenge.PointsReward)
	}
	for _, cp := range resp.CompletedChallenges {
		fmt.Printf("[%s] %s — completed %s\n", cp.Challenge.ID, cp.Challenge.Title, cp.CompletedAt)
	}
	return nil
}

func (a *app) join(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <challenge-id>")
	}

	resp, err := a.client.JoinChallenge(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Println(resp.Message)
	return nil
}

func (a *app) progress(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("progress", flag.ExitOnError)
	increment := fs.Int("by", 1, "progress increment")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("usage: progress [-by n] <challenge-id>")
	}

	resp, err := a.client.UpdateChallengeProgress(ctx, rest[0], *increment)
	if err != nil {
		return err
	}
	fmt.Printf("%d/%d\n", resp.Progress, resp.Target)
	if resp.Completed {
		fmt.Println("Challenge completed!")
	}
	return nil
}

func (a *app) leaderboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("leaderboard", flag.ExitOnError)
	board := fs.String("board", "adventure", "board type: adventure, discovery, social")
	fs.Parse(args)

	resp, err := a.client.Leaderboard(ctx, tastebuds.BoardType(*board))
	if err != nil {
		return err
	}

	for _, entry := range resp.Entries {
		fmt.Printf("%3d. %-24s %8.0f\n", entry.Rank, entry.Name, entry.Score)
	}
	if resp.UserRank > 0 {
		fmt.Printf("Your rank: %d (%.0f pts)\n", resp.UserRank, resp.UserScore)
	}
	return nil
}

func (a *app) achievements(ctx context.Context) error {
	resp, err := a.client.Achievements(ctx)
	if err != nil {
		return err
	}
	for _, ach := range resp.Achievements {
		fmt.Printf("%-24s %s (earned %s)\n", ach.Title, ach.Description, ach.EarnedAt)
	}
	return nil
}

// ==========================
// AI commands
// ==========================

func (a *app) chat(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	chatID := fs.String("chat-id", "", "continue a previous conversation")
	lat := fs.Float64("lat", 0, "latitude")
	lon := fs.Float64("lon", 0, "longitude")
	plain := fs.Bool("no-dna", false, "skip Taste DNA personalization")
	fs.Parse(args)
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: chat [flags] <query>")
	}

	opts := &tastebuds.ChatOptions{ChatID: *chatID, SkipTasteDNA: *plain}
	if isFlagSet(fs, "lat") {
		opts.Latitude = lat
	}
	if isFlagSet(fs, "lon") {
		opts.Longitude = lon
	}

	resp, err := a.client.Chat(ctx, strings.Join(fs.Args(), " "), opts)
	if err != nil {
		return err
	}

	fmt.Println(resp.Text)
	printRestaurants(resp.Businesses)
	if resp.ChatID != "" {
		fmt.Printf("(continue with -chat-id %s)\n", resp.ChatID)
	}
	return nil
}

func (a *app) ask(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: ask <restaurant-id> <question>")
	}

	resp, err := a.client.AskAboutRestaurant(ctx, args[0], strings.Join(args[1:], " "), nil, nil)
	if err != nil {
		return err
	}
	fmt.Println(resp.Text)
	return nil
}

func (a *app) recommend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	occasion := fs.String("occasion", "", "occasion, e.g. anniversary")
	partySize := fs.Int("party", 0, "party size")
	dateTime := fs.String("when", "", "date/time")
	fs.Parse(args)
	if *occasion == "" {
		return fmt.Errorf("-occasion is required")
	}

	resp, err := a.client.Recommend(ctx, *occasion, *partySize, *dateTime, nil, nil)
	if err != nil {
		return err
	}
	fmt.Println(resp.Text)
	printRestaurants(resp.Businesses)
	return nil
}

func (a *app) imageSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("image-search", flag.ExitOnError)
	location := fs.String("location", "", "where to search")
	fs.Parse(args)
	rest := fs.Args()
	if *location == "" || len(rest) < 1 {
		return fmt.Errorf("usage: image-search -location <loc> <image-file>")
	}

	file, err := os.Open(rest[0])
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	resp, err := a.client.SearchByImage(ctx, file.Name(), file, *location)
	if err != nil {
		return err
	}

	fmt.Printf("Detected %s (%s cuisine, %.0f%% confidence)\n",
		resp.DetectedDish, resp.DetectedCuisine, resp.Confidence*100)
	printRestaurants(resp.Restaurants)
	return nil
}

// ==========================
// Helpers
// ==========================

func printRestaurants(restaurants []tastebuds.Restaurant) {
	for _, r := range restaurants {
		line := fmt.Sprintf("%-32s %.1f★", r.Name, r.Rating)
		if r.Price != "" {
			line += "  " + r.Price
		}
		if r.MatchScore > 0 {
			line += fmt.Sprintf("  %.0f%% match", r.MatchScore*100)
		}
		fmt.Println(line)
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func usage() {
	fmt.Fprintln(os.Stderr, `tastebuds — CLI for the TasteBuds restaurant discovery API

Usage: tastebuds <command> [flags]

Auth:          login, register, logout, whoami
Taste DNA:     quiz, dna, card
Twins:         twins [-refresh] [-count]
Discovery:     lucky, trending, compare
Restaurants:   search, show, reviews, save, saved
Date night:    compat, datenight
Gamification:  challenges, join, progress, leaderboard, achievements
AI:            chat, ask, recommend, image-search`)
}
