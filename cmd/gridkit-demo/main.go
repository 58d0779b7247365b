// gridkit-demo: an interactive roster grid over a sample inspector
// dataset, exercising filtering, sorting, pagination, column layout,
// selection and bulk actions from the keyboard.
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"gridkit"
)

type Inspector struct {
	ID          string
	Name        string
	Region      string
	Specialty   string
	Inspections int
	PayRate     float64
	Active      bool
}

func sampleInspectors() []Inspector {
	names := []string{
		"Amara Okafor", "Ben Castillo", "Chen Wei", "Dana Whitfield",
		"Elias Moreau", "Farah Nasser", "Grete Lindqvist", "Hugo Alvarez",
		"Imani Brooks", "Jonas Keller", "Katya Sokolova", "Liam O'Donnell",
		"Mei Tanaka", "Nadia Petrov", "Omar Haddad", "Priya Sharma",
		"Quentin Ross", "Rosa Delgado", "Samuel Adjei", "Tilda Berg",
		"Umar Farooq", "Vera Kovacs", "Wendell Price", "Xiomara Reyes",
		"Yusuf Demir",
	}
	regions := []string{"North", "South", "East", "West", "Central"}
	specialties := []string{"Electrical", "Structural", "Plumbing", "Fire Safety", "HVAC"}

	out := make([]Inspector, len(names))
	for i, name := range names {
		out[i] = Inspector{
			ID:          fmt.Sprintf("insp-%03d", i+1),
			Name:        name,
			Region:      regions[i%len(regions)],
			Specialty:   specialties[(i*3)%len(specialties)],
			Inspections: 12 + (i*37)%140,
			PayRate:     28.50 + float64((i*13)%22),
			Active:      i%4 != 3,
		}
	}
	return out
}

func main() {
	if os.Getenv("GRIDKIT_DEBUG") != "" {
		f, err := tea.LogToFile("gridkit-debug.log", "debug")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("gridkit-demo must run in a terminal")
	}

	grid := gridkit.NewGrid(
		func(i Inspector) string { return i.ID },
		gridkit.NewColumn("name", "Name", func(i Inspector) any { return i.Name }).
			Sort().Filter().Sized(200).Stick(),
		gridkit.NewColumn("region", "Region", func(i Inspector) any { return i.Region }).
			Sort().Filter().Sized(100),
		gridkit.NewColumn("specialty", "Specialty", func(i Inspector) any { return i.Specialty }).
			Sort().Filter().Sized(120),
		gridkit.NewColumn("inspections", "Inspections", func(i Inspector) any { return i.Inspections }).
			Sort().Sized(120).Number(0),
		gridkit.NewColumn("rate", "Pay Rate", func(i Inspector) any { return i.PayRate }).
			Sort().Sized(100).Currency("$", 2),
		gridkit.NewColumn("active", "Active", func(i Inspector) any { return i.Active }).
			Sort().Sized(80).BoolLabel("yes", "no"),
	).Paginate(10).Actions(
		gridkit.BulkAction[Inspector]{
			ID:    "export",
			Label: "Export",
			OnClick: func(rows []Inspector) {
				log.Printf("exporting %d inspectors", len(rows))
			},
		},
		gridkit.BulkAction[Inspector]{
			ID:                   "deactivate",
			Label:                "Deactivate",
			RequiresConfirmation: true,
			OnClick: func(rows []Inspector) {
				log.Printf("deactivating %d inspectors", len(rows))
			},
		},
	).OnRowClick(func(i Inspector, index int) {
		log.Printf("opened %s (%s)", i.Name, i.ID)
	})

	grid.SetRows(sampleInspectors())

	view := gridkit.NewGridView(grid)
	if _, err := tea.NewProgram(view, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
