package util

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/edgeplace/rsuplacer/pkg/topologysearch/algorithms"
	"github.com/edgeplace/rsuplacer/pkg/topologysearch/framework"
)

func newScatter(title, subtitle, xName, yName string) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: xName,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: yName,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))
	return scatter
}

func render(scatter *charts.Scatter, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return scatter.Render(f)
}

// PlotParetoFront creates a scatter plot of a final population in objective
// space, with the first front drawn as its own series. Penalized individuals
// are left out.
func PlotParetoFront(population []*algorithms.Individual, subtitle, filename string) error {
	var front, rest []opts.ScatterData
	for _, ind := range population {
		if len(ind.Value) != 2 {
			return fmt.Errorf("can only plot 2D objective values, got %d", len(ind.Value))
		}
		if math.IsInf(ind.Value[0], 0) || math.IsInf(ind.Value[1], 0) {
			continue
		}
		point := opts.ScatterData{
			Value:      []float64{ind.Value[0], ind.Value[1]},
			Symbol:     "circle",
			SymbolSize: 8,
		}
		if ind.Rank == 1 {
			point.Symbol = "triangle"
			front = append(front, point)
		} else {
			rest = append(rest, point)
		}
	}
	if len(front) == 0 {
		return fmt.Errorf("no feasible individual on the first front")
	}

	scatter := newScatter("Pareto front", subtitle, "Max computation time", "Max migration time")
	scatter.AddSeries("Other ranks", rest).
		AddSeries("Rank 1", front).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	return render(scatter, filename)
}

// PlotNetwork draws the RSUs of a topology and the task origins
func PlotNetwork(network framework.Network, tasks []*framework.Task, filename string) error {
	if len(network) == 0 {
		return fmt.Errorf("network is empty")
	}

	var aps, ess, origins []opts.ScatterData
	for _, rsu := range network {
		point := opts.ScatterData{
			Name:       rsu.ID,
			Value:      []float64{rsu.X, rsu.Y},
			Symbol:     "pin",
			SymbolSize: 14,
		}
		if rsu.IsAccessPoint() {
			aps = append(aps, point)
		} else {
			point.Name = fmt.Sprintf("%s (%s)", rsu.ID, rsu.ES.ID)
			point.Symbol = "diamond"
			ess = append(ess, point)
		}
	}
	for _, task := range tasks {
		origins = append(origins, opts.ScatterData{
			Name:       task.ID,
			Value:      []float64{task.OriginX, task.OriginY},
			Symbol:     "circle",
			SymbolSize: 4,
		})
	}

	scatter := newScatter("Network", fmt.Sprintf("%d access points, %d edge servers", len(aps), len(ess)), "X", "Y")
	scatter.AddSeries("Tasks", origins).
		AddSeries("Access points", aps).
		AddSeries("Edge servers", ess)

	return render(scatter, filename)
}
