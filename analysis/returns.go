package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/zeu5/rollout-sampler/core"
)

// ReturnCurve collects the return of every completed episode per agent
// and plots them against the episode number.
type ReturnCurve struct {
	Name    string
	Window  int
	returns [][]float64
}

var _ core.EpisodeObserver = &ReturnCurve{}

// NewReturnCurve creates the curve, window is the size of the moving
// average drawn on top of the raw returns (0 disables it).
func NewReturnCurve(name string, window int) *ReturnCurve {
	return &ReturnCurve{
		Name:    name,
		Window:  window,
		returns: make([][]float64, 0),
	}
}

func (c *ReturnCurve) EpisodeEnd(summary *core.EpisodeSummary) {
	for len(c.returns) < len(summary.Stats.LastPathReturn) {
		c.returns = append(c.returns, make([]float64, 0))
	}
	for i, r := range summary.Stats.LastPathReturn {
		c.returns[i] = append(c.returns[i], r)
	}
}

// Returns of the agent, one entry per episode
func (c *ReturnCurve) Returns(agent int) []float64 {
	if agent >= len(c.returns) {
		return nil
	}
	return c.returns[agent]
}

// MovingAverage of the returns of the agent over the curve window
func (c *ReturnCurve) MovingAverage(agent int) []float64 {
	returns := c.Returns(agent)
	if c.Window <= 0 || len(returns) == 0 {
		return nil
	}
	out := make([]float64, len(returns))
	for i := range returns {
		start := int(math.Max(0, float64(i-c.Window+1)))
		out[i] = stat.Mean(returns[start:i+1], nil)
	}
	return out
}

// Save plots the curves to a png file
func (c *ReturnCurve) Save(path string) error {
	p := plot.New()
	p.Title.Text = c.Name
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Return"

	for agent := range c.returns {
		if err := c.addLine(p, agent, fmt.Sprintf("agent %d", agent), c.Returns(agent), false); err != nil {
			return err
		}
		if avg := c.MovingAverage(agent); avg != nil {
			if err := c.addLine(p, agent, fmt.Sprintf("agent %d (avg %d)", agent, c.Window), avg, true); err != nil {
				return err
			}
		}
	}
	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

func (c *ReturnCurve) addLine(p *plot.Plot, agent int, label string, values []float64, dashed bool) error {
	points := make(plotter.XYs, len(values))
	for i, v := range values {
		points[i] = plotter.XY{X: float64(i + 1), Y: v}
	}
	line, err := plotter.NewLine(points)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(agent)
	if dashed {
		line.Dashes = plotutil.Dashes(1)
	}
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}
