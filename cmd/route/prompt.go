package main

import (
	"fmt"
	"strconv"

	gr "nickandperla.net/genetic_route"

	"github.com/AlecAivazis/survey/v2"
)

func promptEndpoints(graph *gr.Graph, config *gr.PopulationConfig) (int, int, error) {
	start, err := askNode(graph, "Sender node:", config.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err := askNode(graph, "Receiver node:", config.End)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func askNode(graph *gr.Graph, message string, def int) (int, error) {
	answer := strconv.Itoa(def)
	in := &survey.Input{
		Message: message,
		Default: answer,
		Help:    fmt.Sprintf("a node id in [1, %d]", graph.NodeCount()),
	}

	validate := func(ans interface{}) error {
		id, err := strconv.Atoi(fmt.Sprint(ans))
		if err != nil {
			return fmt.Errorf("%v is not a number", ans)
		}
		if !graph.Contains(id) {
			return fmt.Errorf("node %d outside [1, %d]: %w", id, graph.NodeCount(), gr.ErrInvalidNodeID)
		}
		return nil
	}

	if err := survey.AskOne(in, &answer, survey.WithValidator(validate)); err != nil {
		return 0, fmt.Errorf("failed to read node: %w", err)
	}
	return strconv.Atoi(answer)
}
