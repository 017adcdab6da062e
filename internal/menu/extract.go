package menu

import (
	"context"
	"fmt"
	"log"

	"github.com/BerylCAtieno/product-survey/internal/models"
	"github.com/BerylCAtieno/product-survey/internal/profiler"
	"github.com/BerylCAtieno/product-survey/internal/stats"
)

const backToExtract = "Press Enter to return to the extract data menu..."

// query is one Extract lookup: it asks for its categories and returns the
// filter plus the phrase naming the group in the result line.
type query func() (stats.Filter, string, error)

func (c *Controller) extractMenu(ctx context.Context) error {
	for {
		c.clear()
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Extract Analyzed Data:")
		fmt.Fprintln(c.out)
		c.p.Heading("Choose one of the following options:")
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "1. Search by Gender")
		fmt.Fprintln(c.out, "2. Search by Age Group")
		fmt.Fprintln(c.out, "3. Search by Income Bracket")
		fmt.Fprintln(c.out, "4. Combine Gender and Age Group")
		fmt.Fprintln(c.out, "5. Combine Gender and Income Bracket")
		fmt.Fprintln(c.out, "6. Combine Age Group and Income Bracket")
		fmt.Fprintln(c.out, "7. Create Persona (combination of gender, age group, and income bracket)")
		fmt.Fprintln(c.out, "8. Return to Main Menu")
		fmt.Fprintln(c.out)

		choice, err := c.p.Line("Enter your choice: \n")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.search(ctx, c.byGender)
		case "2":
			err = c.search(ctx, c.byAgeGroup)
		case "3":
			err = c.search(ctx, c.byIncomeBracket)
		case "4":
			err = c.search(ctx, c.byGenderAndAgeGroup)
		case "5":
			err = c.search(ctx, c.byGenderAndIncomeBracket)
		case "6":
			err = c.search(ctx, c.byAgeGroupAndIncomeBracket)
		case "7":
			err = c.createPersona(ctx)
		case "8":
			return nil
		default:
			c.p.Invalid("Invalid choice. Please try again.\n")
			err = c.p.WaitForEnter("Press Enter to try again....")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Controller) byGender() (stats.Filter, string, error) {
	gender, err := c.p.Gender()
	return stats.ByGender(gender), gender, err
}

func (c *Controller) byAgeGroup() (stats.Filter, string, error) {
	age, err := c.p.AgeGroup()
	return stats.ByAgeGroup(age), "age group " + age, err
}

func (c *Controller) byIncomeBracket() (stats.Filter, string, error) {
	income, err := c.p.IncomeBracket()
	return stats.ByIncomeBracket(income), "customers in the income bracket " + income, err
}

func (c *Controller) byGenderAndAgeGroup() (stats.Filter, string, error) {
	gender, err := c.p.Gender()
	if err != nil {
		return stats.Filter{}, "", err
	}
	age, err := c.p.AgeGroup()
	return stats.ByGenderAndAgeGroup(gender, age), gender + " and " + age, err
}

func (c *Controller) byGenderAndIncomeBracket() (stats.Filter, string, error) {
	gender, err := c.p.Gender()
	if err != nil {
		return stats.Filter{}, "", err
	}
	income, err := c.p.IncomeBracket()
	return stats.ByGenderAndIncomeBracket(gender, income), gender + " and " + income, err
}

func (c *Controller) byAgeGroupAndIncomeBracket() (stats.Filter, string, error) {
	age, err := c.p.AgeGroup()
	if err != nil {
		return stats.Filter{}, "", err
	}
	income, err := c.p.IncomeBracket()
	return stats.ByAgeGroupAndIncomeBracket(age, income), age + " and " + income, err
}

// likelihood loads every record and aggregates over f. ok is false when the
// store failed; the failure has already been reported.
func (c *Controller) likelihood(ctx context.Context, f stats.Filter) (stats.Result, bool) {
	records, err := c.store.Records(ctx)
	if err != nil {
		c.failed("read the survey data", err)
		return stats.Result{}, false
	}
	return stats.Likelihood(records, f), true
}

func (c *Controller) noData() {
	c.p.Invalid("\nNo data found for the specified combination.\n")
}

func (c *Controller) search(ctx context.Context, ask query) error {
	f, label, err := ask()
	if err != nil {
		return err
	}

	if res, ok := c.likelihood(ctx, f); ok {
		if res.Empty() {
			c.noData()
		} else {
			successText.Fprintf(c.out, "Likelihood of purchase for %s is %s\n\n", label, res.Formatted())
		}
	}

	return c.p.WaitForEnter(backToExtract)
}

func (c *Controller) createPersona(ctx context.Context) error {
	persona, err := c.p.Persona()
	if err != nil {
		return err
	}

	res, ok := c.likelihood(ctx, stats.ByPersona(persona))
	switch {
	case !ok:
	case res.Empty():
		c.noData()
	default:
		successText.Fprintf(c.out, "Likelihood of purchase for persona %s is %s\n\n", persona, res.Formatted())
		c.describe(ctx, persona, res.Formatted())

		keep, err := c.p.YesNo("Do you want to store the search results? (Y/N): \n")
		if err != nil {
			return err
		}
		if keep {
			c.storeSearch(ctx, models.StoredSearchResult{Persona: persona, LikelihoodPercentage: res.Formatted()})
		} else {
			c.p.Invalid("\nSearch results not stored.\n")
		}
	}

	return c.p.WaitForEnter(backToExtract)
}

func (c *Controller) storeSearch(ctx context.Context, result models.StoredSearchResult) {
	if err := c.store.AppendSearchResult(ctx, result); err != nil {
		c.failed("store the search results", err)
		return
	}
	log.Printf("STATE: stored search result %+v", result)
	successText.Fprint(c.out, "Search results stored successfully.\n\n")
}

// describe prints a generated customer sketch when a profiler is configured.
// Failures are logged and otherwise ignored; the lookup itself succeeded.
func (c *Controller) describe(ctx context.Context, persona models.Persona, likelihood string) {
	if c.describer == nil {
		return
	}
	resp, err := c.describer.DescribePersona(ctx, persona, likelihood)
	if err != nil {
		log.Printf("WARN: failed to describe persona: %v", err)
		return
	}
	if sketch := profiler.Sketch(resp.Profile); sketch != "" {
		infoText.Fprintf(c.out, "Typical customer: %s\n\n", sketch)
	}
}
