package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LanS10t/geminiMiner/internal/elevator"
	"github.com/LanS10t/geminiMiner/internal/mineral"
)

// RunElevator shows the floor picker and returns the depth traveled to,
// or 0 when the panel was closed without travelling.
func RunElevator(ctx context.Context, p *elevator.Panel) (int, error) {
	final, err := tea.NewProgram(NewElevatorModel(p), tea.WithContext(ctx)).Run()
	if err != nil {
		return 0, fmt.Errorf("tui: elevator: %w", err)
	}
	return final.(ElevatorModel).Traveled, nil
}

// RunAppraisal shows the appraisal screen until the user quits.
func RunAppraisal(ctx context.Context, fn AppraiseFunc, inv mineral.Inventory, useDelegated bool) (MsgAppraised, error) {
	final, err := tea.NewProgram(NewAppraisalModel(ctx, fn, inv, useDelegated), tea.WithContext(ctx)).Run()
	if err != nil {
		return MsgAppraised{}, fmt.Errorf("tui: appraisal: %w", err)
	}
	return final.(AppraisalModel).Result, nil
}
