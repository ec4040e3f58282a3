package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"

	"github.com/haidang-dev/allergycare/internal/allergens"
	"github.com/haidang-dev/allergycare/internal/analyze"
	"github.com/haidang-dev/allergycare/internal/api"
	"github.com/haidang-dev/allergycare/internal/authtoken"
	"github.com/haidang-dev/allergycare/internal/config"
	"github.com/haidang-dev/allergycare/internal/mealplans"
	"github.com/haidang-dev/allergycare/internal/recipes"
	"github.com/haidang-dev/allergycare/internal/report"
	"github.com/haidang-dev/allergycare/internal/userallergy"
)

const usage = `allergycare <command> [flags]

Commands:
  profile              show the allergy profile
  edit                 update one allergy record (-allergen, plus draft flags)
  allergens            list the allergen catalog
  plans                list meal plans with completion
  today                show today's meals across all plans
  toggle               flip a meal entry's completion (-plan, -entry)
  recommend            show recommended recipes (-type breakfast|lunch|dinner|snack)
  categories           list recipe ingredient categories
  analyze              analyze a meal photo (-image path)
  card                 export the allergy card PDF (-o file)
  export               export a meal plan to CSV (-plan, -o file)
`

type app struct {
	cfg        *config.Config
	allergens  *allergens.Service
	profile    *userallergy.Service
	reconciler *userallergy.Reconciler
	tracker    *mealplans.Tracker
	recipes    *recipes.Service
	analyzer   *analyze.Service
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	printStartupBanner(cfg)

	client := api.New(api.Options{
		BaseURL:        cfg.APIBaseURL,
		Token:          cfg.APIToken,
		TimeoutSeconds: cfg.APITimeoutSeconds,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	planService := mealplans.NewService(client)
	allergenService := allergens.NewService(client)
	profileService := userallergy.NewService(client)
	a := &app{
		cfg:        cfg,
		allergens:  allergenService,
		profile:    profileService,
		reconciler: userallergy.NewReconciler(profileService, allergenService),
		tracker:    mealplans.NewTracker(planService),
		recipes:    recipes.NewService(client),
		analyzer:   analyze.NewService(client),
	}

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "profile":
		err = a.runProfile(ctx)
	case "edit":
		err = a.runEdit(ctx, os.Args[2:])
	case "allergens":
		err = a.runAllergens(ctx)
	case "plans":
		err = a.runPlans(ctx)
	case "today":
		err = a.runToday(ctx)
	case "toggle":
		err = a.runToggle(ctx, os.Args[2:])
	case "recommend":
		err = a.runRecommend(ctx, os.Args[2:])
	case "categories":
		err = a.runCategories(ctx)
	case "analyze":
		err = a.runAnalyze(ctx, os.Args[2:])
	case "card":
		err = a.runCard(ctx, os.Args[2:])
	case "export":
		err = a.runExport(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("FATAL %s: %v", os.Args[1], err)
	}
}

// printStartupBanner logs the resolved configuration. The token is never
// printed, only its status.
func printStartupBanner(cfg *config.Config) {
	log.Println("========== AllergyCare client ==========")
	log.Printf("  env        = %s", cfg.Env)
	log.Printf("  api_base   = %s", cfg.APIBaseURL)
	log.Printf("  token      = %s", tokenStatus(cfg.APIToken))
	log.Printf("  timeout    = %ds", cfg.APITimeoutSeconds)
	if cfg.RateLimitRPS > 0 {
		log.Printf("  pacing     = %d rps (burst %d)", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func tokenStatus(token string) string {
	if token == "" {
		return "not set"
	}
	claims, err := authtoken.Inspect(token)
	if err != nil {
		return "set (unparseable)"
	}
	if claims.Expired(time.Now()) {
		return fmt.Sprintf("set (EXPIRED %s)", claims.ExpiresAt.Format(time.RFC3339))
	}
	return "set"
}

func (a *app) runProfile(ctx context.Context) error {
	profile, err := a.profile.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%d allergies on record\n", len(profile.Allergies))
	for _, al := range profile.Allergies {
		status := ""
		if al.Outgrown {
			status = " (outgrown)"
		}
		if al.NeedsVerification {
			status += " (needs verification)"
		}
		fmt.Printf("  [%d] %-20s %-10s diagnosed by %s%s\n",
			al.Allergen.ID, al.Allergen.Name, al.Severity, al.DiagnosedBy, status)
	}
	return nil
}

// runEdit drives a full edit round trip: load the slot, overlay whatever
// draft flags were given, save. Flags left at their defaults keep the loaded
// values.
func (a *app) runEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	allergenID := fs.String("allergen", "", "current allergen id of the record")
	newAllergen := fs.Int("new-allergen", 0, "re-point the record to this allergen id")
	severity := fs.String("severity", "", "mild|moderate|severe|critical")
	diagnosisDate := fs.String("diagnosis-date", "", "DD-MM-YYYY")
	diagnosedBy := fs.String("diagnosed-by", "", "diagnosing clinician")
	lastReaction := fs.String("last-reaction", "", "DD-MM-YYYY (empty clears)")
	notes := fs.String("notes", "", "avoidance notes")
	outgrown := fs.Bool("outgrown", false, "mark the allergy outgrown")
	outgrownDate := fs.String("outgrown-date", "", "DD-MM-YYYY, only with -outgrown")
	fs.Parse(args)

	if *allergenID == "" {
		return fmt.Errorf("-allergen is required")
	}

	result, err := a.reconciler.Load(ctx, *allergenID)
	if err != nil {
		return err
	}

	draft := result.Draft
	if *newAllergen > 0 {
		draft.NewAllergenID = *newAllergen
	}
	if *severity != "" {
		draft.Severity = *severity
	}
	if *diagnosisDate != "" {
		draft.DiagnosisDate = *diagnosisDate
	}
	if *diagnosedBy != "" {
		draft.DiagnosedBy = *diagnosedBy
	}
	if *lastReaction != "" {
		draft.LastReactionDate = *lastReaction
	}
	if *notes != "" {
		draft.AvoidanceNotes = *notes
	}
	if *outgrown {
		draft.Outgrown = true
		if *outgrownDate != "" {
			draft.OutgrownDate = *outgrownDate
		}
	}

	if err := a.reconciler.Save(ctx, result.Current.Allergen.ID, draft); err != nil {
		return err
	}
	fmt.Printf("allergy record for %s updated\n", result.Current.Allergen.Name)
	return nil
}

func (a *app) runAllergens(ctx context.Context) error {
	catalog, err := a.allergens.All(ctx)
	if err != nil {
		return err
	}
	for _, al := range catalog {
		flags := ""
		if al.IsFdaMajor {
			flags += " FDA"
		}
		if al.IsEuMajor {
			flags += " EU"
		}
		fmt.Printf("  [%d] %-24s %-12s%s\n", al.ID, al.Name, al.Category, flags)
	}
	return nil
}

func (a *app) runPlans(ctx context.Context) error {
	if err := a.tracker.LoadPlans(ctx); err != nil {
		return err
	}
	for _, plan := range a.tracker.Plans() {
		fmt.Printf("  [%d] %-28s %s to %s  %d/%d meals (%d%%)\n",
			plan.ID, plan.Name, plan.StartDate, plan.EndDate,
			plan.CompletedMeals, plan.TotalMeals, a.tracker.CompletionPercent(plan.ID))
	}
	return nil
}

func (a *app) runToday(ctx context.Context) error {
	if err := a.tracker.LoadPlans(ctx); err != nil {
		return err
	}
	meals := a.tracker.TodaysMeals()
	if len(meals) == 0 {
		fmt.Println("no meals scheduled for today")
		return nil
	}
	for _, meal := range meals {
		mark := " "
		if meal.IsCompleted {
			mark = "x"
		}
		fmt.Printf("  [%s] #%d %-10s %s\n", mark, meal.ID, meal.MealType, meal.MealName)
	}
	return nil
}

func (a *app) runToggle(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("toggle", flag.ExitOnError)
	planID := fs.Int("plan", 0, "meal plan id")
	entryID := fs.Int("entry", 0, "meal entry id")
	fs.Parse(args)

	if *planID <= 0 || *entryID <= 0 {
		return fmt.Errorf("-plan and -entry are required")
	}

	if err := a.tracker.LoadPlans(ctx); err != nil {
		return err
	}
	if err := a.tracker.ToggleCompletion(ctx, *planID, *entryID); err != nil {
		return err
	}

	plan, _ := a.tracker.Plan(*planID)
	fmt.Printf("plan %d now %d/%d meals completed\n", *planID, plan.CompletedMeals, plan.TotalMeals)
	return nil
}

func (a *app) runRecommend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	mealType := fs.String("type", "", "breakfast|lunch|dinner|snack (empty for all)")
	fs.Parse(args)

	ranked, err := a.tracker.RecommendedRecipes(ctx, *mealType)
	if err != nil {
		return err
	}
	for _, r := range ranked {
		fmt.Printf("  [%d] %-32s %s (%d min)\n",
			r.ID, r.Name, r.MealType, r.PrepTimeMinutes+r.CookTimeMinutes)
	}
	return nil
}

func (a *app) runCategories(ctx context.Context) error {
	categories, err := a.recipes.Categories(ctx)
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(categories, ", "))
	return nil
}

func (a *app) runAnalyze(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	imagePath := fs.String("image", "", "path to a meal photo")
	fs.Parse(args)

	if *imagePath == "" {
		return fmt.Errorf("-image is required")
	}

	mimeType := mimeForFile(*imagePath)
	if !a.cfg.MimeAllowed(mimeType) {
		return fmt.Errorf("unsupported image type %s", mimeType)
	}

	info, err := os.Stat(*imagePath)
	if err != nil {
		return err
	}
	if info.Size() > int64(a.cfg.UploadMaxMB)*1024*1024 {
		return fmt.Errorf("image exceeds %d MB limit", a.cfg.UploadMaxMB)
	}

	file, err := os.Open(*imagePath)
	if err != nil {
		return err
	}
	defer file.Close()

	// The photo travels with the user's allergen names so the backend can
	// score risk against this profile.
	profile, err := a.profile.Profile(ctx)
	if err != nil {
		return err
	}
	known := make([]string, 0, len(profile.Allergies))
	for _, al := range profile.Allergies {
		known = append(known, al.Allergen.Name)
	}

	result, err := a.analyzer.AnalyzeFood(ctx, analyze.Image{
		Reader:   file,
		Filename: filepath.Base(*imagePath),
		MIMEType: mimeType,
	}, known)
	if err != nil {
		return err
	}

	if result.NoFoodDetected() {
		fmt.Println("no food detected in the image, try a clearer shot")
		return nil
	}

	fmt.Printf("overall risk score: %.1f\n", result.OverallRiskScore)
	for _, food := range result.DetectedFoods {
		fmt.Printf("  %s (%.0f%% confidence)\n", food.Name, food.Confidence*100)
	}
	for _, warning := range result.AllergenWarnings {
		urgent := ""
		if warning.RequiresImmediateAttention {
			urgent = " !! seek attention on reaction"
		}
		fmt.Printf("  WARNING %s risk: %s in %s%s\n",
			warning.RiskLevel, warning.AllergenDisplayName,
			strings.Join(warning.FoundInFoods, ", "), urgent)
	}
	return nil
}

func (a *app) runCard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("card", flag.ExitOnError)
	output := fs.String("o", "", "output file (default: generated name)")
	holder := fs.String("holder", "", "card holder name")
	fs.Parse(args)

	profile, err := a.profile.Profile(ctx)
	if err != nil {
		return err
	}

	data, err := report.AllergyCard(*holder, profile.Allergies)
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = filepath.Join(a.cfg.ReportsOutputDir, "allergy-card-"+uuid.NewString()+".pdf")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("allergy card written to %s\n", path)
	return nil
}

func (a *app) runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	planID := fs.Int("plan", 0, "meal plan id")
	output := fs.String("o", "", "output file (default: generated name)")
	fs.Parse(args)

	if *planID <= 0 {
		return fmt.Errorf("-plan is required")
	}

	if err := a.tracker.LoadPlans(ctx); err != nil {
		return err
	}
	plan, ok := a.tracker.Plan(*planID)
	if !ok {
		return fmt.Errorf("plan %d not found", *planID)
	}

	data, err := report.MealPlanCSV(plan)
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = filepath.Join(a.cfg.ReportsOutputDir, fmt.Sprintf("meal-plan-%d.csv", *planID))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("meal plan written to %s\n", path)
	return nil
}

func mimeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".heic":
		return "image/heic"
	default:
		return "image/jpeg"
	}
}
