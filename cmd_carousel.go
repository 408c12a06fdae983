package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/edugroup/site-api/app"
	"github.com/edugroup/site-api/manager"
	"github.com/edugroup/site-api/model"
	"github.com/edugroup/site-api/services"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// carouselCmd manages the home page carousel order from a terminal
var carouselCmd = &cobra.Command{
	Use:   "carousel",
	Short: "Inspect and reorder the home page carousel",
}

var carouselListCmd = &cobra.Command{
	Use:   "list",
	Short: "List carousel images in display order",
	Args:  cobra.NoArgs,
	RunE:  runCarouselList,
}

var carouselMoveCmd = &cobra.Command{
	Use:   "move <id> <up|down>",
	Short: "Swap an image with its neighbour",
	Args:  cobra.ExactArgs(2),
	RunE:  runCarouselMove,
}

func init() {
	carouselCmd.AddCommand(carouselListCmd)
	carouselCmd.AddCommand(carouselMoveCmd)
}

func openCarousel() (*manager.CarouselManager, func(), error) {
	_, store, err := app.Bootstrap()
	if err != nil {
		return nil, nil, err
	}
	m := manager.NewCarouselManager(services.NewCarouselService(store.DB()))
	return m, func() { store.Close() }, nil
}

func runCarouselList(cmd *cobra.Command, args []string) error {
	m, done, err := openCarousel()
	if err != nil {
		return err
	}
	defer done()

	printSlides(cmd, m.Load(cmd.Context()))
	return nil
}

func runCarouselMove(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid image id %q", args[0])
	}
	dir, err := services.ParseDirection(args[1])
	if err != nil {
		return err
	}

	m, done, err := openCarousel()
	if err != nil {
		return err
	}
	defer done()

	m.Load(cmd.Context())
	slides, err := m.Move(cmd.Context(), id, dir)
	if err != nil {
		return err
	}
	printSlides(cmd, slides)
	return nil
}

func printSlides(cmd *cobra.Command, slides []model.CarouselImage) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tID\tSTATUS\tTITLE")
	for _, s := range slides {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.SortOrder, s.ID, s.Status, s.Title)
	}
	w.Flush()
}
