package menu

import (
	"context"
	"fmt"
	"log"

	"github.com/BerylCAtieno/product-survey/internal/models"
)

func (c *Controller) insertData(ctx context.Context) error {
	fmt.Fprintln(c.out, "\nInsert Data - Please provide the following information:")
	fmt.Fprintln(c.out)

	persona, err := c.p.Persona()
	if err != nil {
		return err
	}

	c.p.Heading("\nEnter the likelihood of purchasing a Apple Vision Pro (0-10 scale):\n")
	likelihood, err := c.p.Likelihood()
	if err != nil {
		return err
	}

	record := models.SurveyRecord{
		Gender:        persona.Gender,
		AgeGroup:      persona.AgeGroup,
		IncomeBracket: persona.IncomeBracket,
		Likelihood:    likelihood,
	}
	if err := c.store.AppendRecord(ctx, record); err != nil {
		c.failed("insert the data", err)
	} else {
		log.Printf("STATE: appended record %+v", record)
		successText.Fprint(c.out, "Data has been successfully inserted into the spreadsheet.\n\n")
	}

	return c.p.WaitForEnter("Press Enter to return to the main menu...")
}
