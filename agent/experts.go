package agent

import (
	"context"
	"fmt"

	"github.com/etnz/klocking"
	"github.com/etnz/klocking/date"
	"github.com/etnz/klocking/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// LedgerLoader opens a fresh view of the user's ledger. Each function call
// reloads so the expert always answers from the latest commit.
type LedgerLoader func() (*klocking.Store, error)

// newFacilitator builds the orchestrating expert that owns the conversation
// and delegates to the others.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert skills available from the Tools and ask them questions.
			They are at your service and keep context of your previous questions.

			The user tracks how they spend their time across personal activities. They are here
			to understand where their time went, spot imbalances, and get help keeping good habits.

			Devise a plan of questions to each expert and come up with the best response.
			The user will assume you already looked at their ledger, so check it first.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewCoach returns the expert grounded on search, for questions beyond the
// ledger itself.
func NewCoach() *Expert {
	return &Expert{
		Name: "Coach",
		Description: `An expert on time management, habits and productivity.
		Ask the Coach whenever the user wants advice, comparisons or any
		grounding information beyond their own ledger.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in time management and habit building. Use Google Search
			to ground your advice. Relate what you find to the user's own numbers when
			the facilitator provides them.
		`}}},
		},
	}
}

// NewBookkeeper returns the expert that reads the user's ledger through
// function calls.
func NewBookkeeper(load LedgerLoader) *Expert {
	lib := []Function{summaryFunc(load), activitiesFunc(load), dayFunc(load)}
	return &Expert{
		Name: "Bookkeeper",
		Description: `The Bookkeeper reads the user's time ledger. It can list the
		activities, summarise any day, week, month or year, and detail a single
		day's allocation.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are the bookkeeper of the user's time ledger. Use the available tools
			to read it: the activity roster, period summaries, and single-day detail.
			Other experts may ask you approximate questions, figure out what they meant.
		`}}},
		},
		Library: NewLibrary(lib),
	}
}

// errResponse wraps an error into a function response.
func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

// parseDay reads the optional "date" argument, defaulting to today.
func parseDay(args map[string]any, today date.Date) (date.Date, error) {
	idate, ok := args["date"]
	if !ok {
		return today, nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return today, fmt.Errorf("argument 'date' is not a string but %T", idate)
	}
	d, err := date.Parse(sdate)
	if err != nil {
		return today, fmt.Errorf("argument 'date' must be a YYYY-MM-DD day, got %q", sdate)
	}
	return d, nil
}

func summaryFunc(load LedgerLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Summary",
			Description: `Summary reports the time tracked over a period: minutes per activity,
			the untracked remainder and the share of each in the window.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"period": {
						Type:        genai.TypeString,
						Description: "One of day, week, month, year. Defaults to day.",
					},
					"date": {
						Type:        genai.TypeString,
						Description: "A YYYY-MM-DD day inside the period. Defaults to today.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of activities, durations and shares for the period.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := load()
			if err != nil {
				return errResponse(id, "Summary", err)
			}
			anchor, err := parseDay(args, date.Of(s.Now()))
			if err != nil {
				return errResponse(id, "Summary", err)
			}
			p := date.Daily
			if sp, ok := args["period"].(string); ok && sp != "" {
				if p, err = date.ParsePeriod(sp); err != nil {
					return errResponse(id, "Summary", err)
				}
			}
			r := date.NewRange(anchor, p)
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Summary",
				Response: map[string]any{
					"output": renderer.SummaryMarkdown(s.State(), r, s.Now()),
				},
			}
		},
	}
}

func activitiesFunc(load LedgerLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Activities",
			Description: `Activities lists the user's activities with their display order, color and status.`,
			Parameters:  &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the activity roster.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := load()
			if err != nil {
				return errResponse(id, "Activities", err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Activities",
				Response: map[string]any{
					"output": renderer.ActivitiesMarkdown(s.State()),
				},
			}
		},
	}
}

func dayFunc(load LedgerLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Day",
			Description: `Day details the allocation of a single day: committed minutes per
			activity and the unallocated remainder.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"date": {
						Type:        genai.TypeString,
						Description: "The YYYY-MM-DD day to detail. Defaults to today.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the day's allocation.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			s, err := load()
			if err != nil {
				return errResponse(id, "Day", err)
			}
			d, err := parseDay(args, date.Of(s.Now()))
			if err != nil {
				return errResponse(id, "Day", err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Day",
				Response: map[string]any{
					"output": renderer.DayMarkdown(s.State(), d, s.Now()),
				},
			}
		},
	}
}
