package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/oliveprice"
	"github.com/etnz/oliveprice/docs"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and of answering the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They keep the context of your previous questions.

			The user follows the origin prices of olive oil in Spain (Poolred), for three grades:
			extra virgin, virgin and lampante. Prices are in euros per kilogram.

			Devise a plan of questions to ask each expert, then write the best answer to the user's request.
			Always check the recorded prices with the Analyst before quoting a figure.
			Answer in markdown.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewMarket returns an expert grounded on Google Search, for news about the
// olive oil market.
func NewMarket() *Expert {
	return &Expert{
		Name: "Market",
		Description: `This is an expert of the olive oil market.
		Well aware of harvests, weather, producers, cooperatives and regulations.
		Ask the Market expert whenever you need recent news or an explanation of a price movement.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert of the olive oil market in Spain and in the Mediterranean.
			You leverage Google Search to ground your assertions: harvest forecasts, weather,
			stocks, export figures and regulations.
			Relate the news to the price movements you are asked about.
			`}}},
		},
	}
}

// NewAnalyst returns an expert that reads the reconciled price history.
func NewAnalyst(book oliveprice.Book) *Expert {
	lib := Analysis(book)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It reads the recorded daily price history of olive oil,
		one gap free series per grade, and computes figures from it: prices on a day, over a period,
		and changes between two days.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the recorded olive oil price history.
				Use the Tools to get the prices, never guess a figure.
				Grades are named extra-virgin, virgin and lampante.
				Dates are written YYYY-MM-DD.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a Function with a closure.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// schemas shared by the analysis functions.
var (
	gradeSchema = &genai.Schema{
		Type:        genai.TypeString,
		Description: "The oil grade. All grades if omitted.",
		Enum:        []string{"extra-virgin", "virgin", "lampante"},
	}
	dateSchema = func(description string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeString,
			Description: description + " Format YYYY-MM-DD, or any of:\n\n" + docs.MustGetTopic("dates"),
		}
	}
	markdownSchema = &genai.Schema{
		Type:        genai.TypeString,
		Description: "A markdown-formatted answer.",
	}
)

// Analysis returns the functions that read a book.
func Analysis(book oliveprice.Book) []Function {
	return []Function{
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Overview",
				Description: "Overview lists, for each grade, the number of recorded days, the first and last day, and the latest price.",
				Parameters:  &genai.Schema{Type: genai.TypeObject},
				Response:    markdownSchema,
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return success(id, "Overview", oliveprice.Summary(&oliveprice.Result{Book: book}))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "PriceOn",
				Description: "PriceOn returns the price of each grade on a day, or the latest known price before that day.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"date": dateSchema("The day. Today is the default."),
					},
				},
				Response: markdownSchema,
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				day, err := dateArg(args, "date", oliveprice.Today())
				if err != nil {
					return failure(id, "PriceOn", err)
				}
				return success(id, "PriceOn", priceOn(book, day))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Prices",
				Description: "Prices lists the daily prices between two days, inclusive.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"grade": gradeSchema,
						"from":  dateSchema("The first day."),
						"to":    dateSchema("The last day. Today is the default."),
					},
					Required: []string{"from"},
				},
				Response: markdownSchema,
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				grades, from, to, err := periodArgs(args)
				if err != nil {
					return failure(id, "Prices", err)
				}
				return success(id, "Prices", prices(book, grades, from, to))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "Change",
				Description: "Change computes the price change of each grade between two days, in €/kg and in percent.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"grade": gradeSchema,
						"from":  dateSchema("The reference day."),
						"to":    dateSchema("The compared day. Today is the default."),
					},
					Required: []string{"from"},
				},
				Response: markdownSchema,
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				grades, from, to, err := periodArgs(args)
				if err != nil {
					return failure(id, "Change", err)
				}
				return success(id, "Change", change(book, grades, from, to))
			},
		},
	}
}

func priceOn(book oliveprice.Book, day oliveprice.Date) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Prices on %s:\n\n", day)
	for _, g := range oliveprice.Grades() {
		p, ok := book.History(g).ValueAsOf(day)
		if !ok {
			fmt.Fprintf(&sb, "- %s: no price recorded\n", g)
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", g, oliveprice.FormatPrice(p))
	}
	return sb.String()
}

func prices(book oliveprice.Book, grades []oliveprice.Grade, from, to oliveprice.Date) string {
	var sb strings.Builder
	sb.WriteString("| Date |")
	for _, g := range grades {
		fmt.Fprintf(&sb, " %s |", g)
	}
	sb.WriteString("\n|---|")
	sb.WriteString(strings.Repeat("---|", len(grades)))
	sb.WriteString("\n")
	for day := from; !day.After(to); day = day.Add(1) {
		fmt.Fprintf(&sb, "| %s |", day)
		for _, g := range grades {
			if p, ok := book.History(g).Get(day); ok {
				fmt.Fprintf(&sb, " %s |", oliveprice.FormatPrice(p))
			} else {
				sb.WriteString(" |")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func change(book oliveprice.Book, grades []oliveprice.Grade, from, to oliveprice.Date) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Change from %s to %s:\n\n", from, to)
	for _, g := range grades {
		h := book.History(g)
		a, okA := h.ValueAsOf(from)
		b, okB := h.ValueAsOf(to)
		if !okA || !okB {
			fmt.Fprintf(&sb, "- %s: no price recorded\n", g)
			continue
		}
		diff := b.Sub(a)
		pct := "n/a"
		if !a.IsZero() {
			pct = diff.Div(a).Shift(2).StringFixed(1) + "%"
		}
		fmt.Fprintf(&sb, "- %s: %s to %s, %s €/kg (%s)\n", g, oliveprice.FormatPrice(a), oliveprice.FormatPrice(b), diff.StringFixed(3), pct)
	}
	return sb.String()
}

// maxDays bounds the Prices table.
const maxDays = 366

func periodArgs(args map[string]any) (grades []oliveprice.Grade, from, to oliveprice.Date, err error) {
	grades = oliveprice.Grades()
	if v, ok := args["grade"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, from, to, fmt.Errorf("argument 'grade' is not a string as expected but %T", v)
		}
		g, err := oliveprice.ParseGrade(s)
		if err != nil {
			return nil, from, to, err
		}
		grades = []oliveprice.Grade{g}
	}
	if to, err = dateArg(args, "to", oliveprice.Today()); err != nil {
		return nil, from, to, err
	}
	if from, err = dateArg(args, "from", to); err != nil {
		return nil, from, to, err
	}
	if from.After(to) {
		return nil, from, to, fmt.Errorf("'from' %s is after 'to' %s", from, to)
	}
	if to.Sub(from) >= maxDays {
		return nil, from, to, fmt.Errorf("period from %s to %s is longer than %d days", from, to, maxDays)
	}
	return grades, from, to, nil
}

func dateArg(args map[string]any, name string, def oliveprice.Date) (oliveprice.Date, error) {
	v, ok := args[name]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return def, fmt.Errorf("argument '%s' is not a string as expected but %T", name, v)
	}
	day, err := oliveprice.ParseDate(s)
	if err != nil {
		return def, fmt.Errorf("argument '%s' must be a date like 2024-03-01, see the date formats in the parameter description: %w", name, err)
	}
	return day, nil
}
