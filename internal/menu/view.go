package menu

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/product-survey/internal/models"
	"github.com/olekukonko/tablewriter"
)

const backToView = "Press Enter to return to the stored data menu..."

func (c *Controller) viewMenu(ctx context.Context) error {
	for {
		c.clear()
		fmt.Fprintln(c.out, "\nView Stored Data:")
		fmt.Fprintln(c.out)
		c.p.Heading("Choose one of the following options:\n")
		fmt.Fprintln(c.out, "1. View Last Search Persona")
		fmt.Fprintln(c.out, "2. View All Stored Search Personas")
		fmt.Fprintln(c.out, "3. Return to Main Menu")
		fmt.Fprintln(c.out)

		choice, err := c.p.Line("Enter your choice: \n")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.viewLastSearch(ctx)
		case "2":
			err = c.viewAllSearches(ctx)
		case "3":
			return nil
		default:
			c.p.Invalid("\nInvalid choice. Please try again.\n")
			err = c.p.WaitForEnter("Press Enter to try again....")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Controller) searchResults(ctx context.Context) ([]models.StoredSearchResult, bool) {
	results, err := c.store.SearchResults(ctx)
	if err != nil {
		c.failed("read the stored searches", err)
		return nil, false
	}
	return results, true
}

func (c *Controller) viewLastSearch(ctx context.Context) error {
	if results, ok := c.searchResults(ctx); ok {
		if len(results) == 0 {
			c.p.Invalid("\nNo available data\n")
		} else {
			c.p.Heading("\nLast Search Persona:\n")
			for _, kv := range results[len(results)-1].Fields() {
				successText.Fprintf(c.out, "%s: %s\n", kv[0], kv[1])
			}
		}
	}
	fmt.Fprintln(c.out)
	return c.p.WaitForEnter(backToView)
}

func (c *Controller) viewAllSearches(ctx context.Context) error {
	if results, ok := c.searchResults(ctx); ok {
		c.p.Heading("\nAll Stored Search Personas:\n")
		if len(results) == 0 {
			c.p.Invalid("\nNo available data\n")
		} else {
			table := tablewriter.NewWriter(c.out)
			table.SetHeader(models.StoredSearchHeader)
			for _, r := range results {
				table.Append([]string{r.Gender, r.AgeGroup, r.IncomeBracket, r.LikelihoodPercentage})
			}
			table.Render()
			fmt.Fprintln(c.out)
		}
	}
	return c.p.WaitForEnter(backToView)
}
