package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"slate/database/kv"
	planRepo "slate/database/repository/plan"
	"slate/models"
	"slate/services/availability"
	"slate/services/group"
	"slate/services/intent"
	"slate/services/planner"
	"slate/services/vibe"

	"go.uber.org/zap"
)

// Context is shared by every command. All services run in-process over the
// demo catalogue with simulated availability.
type Context struct {
	Provider availability.Provider
	Planner  planner.PlannerService
	Groups   group.GroupSessionService
	Out      io.Writer
}

func newContext(seed int64, logger *zap.Logger, out io.Writer) *Context {
	provider := availability.WithSimulatedBooking(availability.DemoCatalog(), availability.NewSimulator(seed))
	scorer := vibe.NewScorer(nil, logger)
	return &Context{
		Provider: provider,
		Planner:  planner.NewPlannerService(intent.NewKeywordParser(), provider, scorer, planRepo.NewMemoryPlanRepo(), logger),
		Groups: &group.DefaultGroupSessionService{
			Store:  kv.NewMemoryStore(),
			Solver: group.NewSolver(provider, logger),
			Booker: provider,
			Logger: logger,
			Now:    time.Now,
		},
		Out: out,
	}
}

// printSink writes one line per event as it happens.
type printSink struct {
	out   io.Writer
	quiet bool
}

func (p printSink) Emit(e models.Event) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "  [%s] %s\n", e.Type, e.Message)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type PlanCmd struct {
	Prompt []string `arg:"" help:"What you want, e.g. 'dinner for 2 in west village at 7pm, italian'."`
	Photos []string `help:"Vibe photo ids to build a profile from." sep:","`
	JSON   bool     `help:"Print the full plan as JSON."`
}

func (c *PlanCmd) Run(ctx *Context) error {
	prompt := strings.Join(c.Prompt, " ")
	var profile *models.UserProfile
	if len(c.Photos) > 0 {
		v := vibe.FromSelections(c.Photos)
		profile = &models.UserProfile{ID: "cli", VibeVector: v, VibeSummary: vibe.Summary(v), FavoritePhotos: c.Photos}
		fmt.Fprintf(ctx.Out, "Vibe: %s\n", profile.VibeSummary)
	}

	plan := ctx.Planner.CreatePlan(context.Background(), prompt, profile, printSink{out: ctx.Out, quiet: c.JSON})
	if c.JSON {
		return writeJSON(ctx.Out, plan)
	}

	fmt.Fprintf(ctx.Out, "\nPlan %s: %s\n", plan.ID, plan.Status)
	if len(plan.Stops) == 0 {
		fmt.Fprintln(ctx.Out, "  No stops booked.")
		return nil
	}
	for _, s := range plan.Stops {
		line := fmt.Sprintf("  %-7s %s  %s (%s)", s.Type, s.Time, s.Restaurant.Name, s.Restaurant.PriceLevel)
		if s.Booking.ConfirmationNumber != "" {
			line += "  conf " + s.Booking.ConfirmationNumber
		}
		if s.WalkingFromPrevious != nil {
			line += fmt.Sprintf("  %d min walk", s.WalkingFromPrevious.Minutes)
		}
		fmt.Fprintln(ctx.Out, line)
	}
	fmt.Fprintf(ctx.Out, "  Estimated total: $%d\n", plan.TotalEstimatedCost)
	return nil
}

type SearchCmd struct {
	Term     string `arg:"" optional:"" help:"Search term."`
	Location string `help:"Neighbourhood or city." default:"New York, NY"`
	Price    string `help:"Price filter, e.g. 1,2."`
	Limit    int    `help:"Maximum results." default:"10"`
}

func (c *SearchCmd) Run(ctx *Context) error {
	rs, err := ctx.Provider.Search(context.Background(), availability.SearchParams{
		Term:     c.Term,
		Location: c.Location,
		Price:    c.Price,
		Limit:    c.Limit,
	})
	if err != nil {
		return err
	}
	for _, r := range rs {
		fmt.Fprintf(ctx.Out, "%-32s %-4s %.1f  %s\n", r.Name, r.PriceLevel, r.Rating, strings.Join(r.Categories, ", "))
	}
	if len(rs) == 0 {
		fmt.Fprintln(ctx.Out, "No matches.")
	}
	return nil
}

type GroupSolveCmd struct {
	Location     string   `help:"Where the group is meeting." default:"West Village"`
	Date         string   `help:"Date (YYYY-MM-DD); defaults to tomorrow."`
	Time         string   `help:"Time (HH:MM)." default:"19:00"`
	Participant  []string `help:"Participant as name[:key=value;...], keys cuisine,avoid,diet,vibe,max,access." short:"p"`
	Participants string   `help:"JSON file with an array of {name, constraints}." type:"existingfile"`
	Book         bool     `help:"Book the winning restaurant."`
}

func (c *GroupSolveCmd) Run(ctx *Context) error {
	joins, err := c.joinRequests()
	if err != nil {
		return err
	}
	if len(joins) == 0 {
		return fmt.Errorf("at least one participant is required")
	}

	date := c.Date
	if date == "" {
		date = time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	}
	bg := context.Background()
	session, err := ctx.Groups.Create(bg, group.CreateSessionRequest{
		CreatorName: joins[0].Name,
		Date:        date,
		Time:        c.Time,
		Location:    c.Location,
	})
	if err != nil {
		return err
	}
	if joins[0].Constraints != nil {
		if _, err := ctx.Groups.UpdateConstraints(bg, session.ID, session.CreatorID, *joins[0].Constraints); err != nil {
			return err
		}
	}
	for _, j := range joins[1:] {
		if _, _, err := ctx.Groups.Join(bg, session.ID, j); err != nil {
			return err
		}
	}

	sink := printSink{out: ctx.Out}
	result, _, err := ctx.Groups.Solve(bg, session.ID, sink)
	if err != nil {
		return err
	}
	if result.Solution == nil {
		fmt.Fprintln(ctx.Out, "\nNo restaurant satisfies everyone.")
		return nil
	}
	fmt.Fprintf(ctx.Out, "\n%s (%s), %d%% satisfaction\n", result.Solution.Name, result.Solution.PriceLevel, result.SatisfactionScore)

	if !c.Book {
		return nil
	}
	booked, err := ctx.Groups.BookSolution(bg, session.ID, sink)
	if err != nil {
		return err
	}
	if b := booked.Booking; b != nil {
		fmt.Fprintf(ctx.Out, "Booking %s", b.Status)
		if b.ConfirmationNumber != "" {
			fmt.Fprintf(ctx.Out, ", confirmation %s", b.ConfirmationNumber)
		}
		if b.HandoffURL != "" {
			fmt.Fprintf(ctx.Out, ", finish at %s", b.HandoffURL)
		}
		fmt.Fprintln(ctx.Out)
	}
	return nil
}

func (c *GroupSolveCmd) joinRequests() ([]group.JoinRequest, error) {
	var out []group.JoinRequest
	if c.Participants != "" {
		raw, err := os.ReadFile(c.Participants)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("parse %s: %w", c.Participants, err)
		}
	}
	for _, p := range c.Participant {
		j, err := parseParticipant(p)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}

// parseParticipant reads "Ana:cuisine=italian,thai;max=60;access".
func parseParticipant(s string) (group.JoinRequest, error) {
	name, rest, _ := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return group.JoinRequest{}, fmt.Errorf("participant %q has no name", s)
	}
	j := group.JoinRequest{Name: name}
	if strings.TrimSpace(rest) == "" {
		return j, nil
	}

	var gc models.GroupConstraints
	for _, part := range strings.Split(rest, ";") {
		key, value, _ := strings.Cut(strings.TrimSpace(part), "=")
		list := splitList(value)
		switch strings.ToLower(key) {
		case "":
		case "cuisine":
			gc.CuisineYes = append(gc.CuisineYes, list...)
		case "avoid":
			gc.CuisineNo = append(gc.CuisineNo, list...)
		case "diet":
			gc.Dietary = append(gc.Dietary, list...)
		case "vibe":
			gc.VibeKeywords = append(gc.VibeKeywords, list...)
		case "max":
			n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(value), "$"))
			if err != nil || n < 0 {
				return j, fmt.Errorf("participant %s: bad max price %q", name, value)
			}
			gc.MaxPrice = n
		case "access":
			gc.Accessibility = true
		case "other":
			gc.Other = strings.TrimSpace(value)
		default:
			return j, fmt.Errorf("participant %s: unknown constraint %q", name, key)
		}
	}
	j.Constraints = &gc
	return j, nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

type VibeCmd struct {
	Photos []string `arg:"" help:"Photo ids picked during onboarding."`
}

func (c *VibeCmd) Run(ctx *Context) error {
	v := vibe.FromSelections(c.Photos)
	fmt.Fprintln(ctx.Out, vibe.Summary(v))
	return writeJSON(ctx.Out, v)
}
