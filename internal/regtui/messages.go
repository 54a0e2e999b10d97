package regtui

import "github.com/wandb/regviz/internal/controller"

type trainDoneMsg struct {
	reply *controller.TrainReply
}

type predictDoneMsg struct {
	reply *controller.PredictReply
}

type statusMsg struct {
	trained bool
	err     error
}

type exportDoneMsg struct {
	path string
	err  error
}
