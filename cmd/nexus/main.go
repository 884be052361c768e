// Package main provides the nexus CLI.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/born-ml/nexus/internal/backend/cpu"
	"github.com/born-ml/nexus/internal/linreg"
	"github.com/born-ml/nexus/internal/nn"
	"github.com/born-ml/nexus/internal/optim"
	"github.com/born-ml/nexus/internal/serialization"
	"github.com/born-ml/nexus/internal/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "version":
		fmt.Printf("nexus %s\n", version)
	case "grad":
		err = runGrad(args)
	case "train":
		err = runTrain(args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Println("nexus - reverse-mode automatic differentiation for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  grad       Print gradients of the XOR linear-layer loss (see grad -h)")
	fmt.Println("  train      Fit the linear layer with SGD or Adam (see train -h)")
}

func runGrad(args []string) error {
	fs := flag.NewFlagSet("grad", flag.ExitOnError)
	weights := fs.String("weights", "", "SafeTensors checkpoint holding \"weight\" (default [[0.5, -0.5]])")
	if err := fs.Parse(args); err != nil {
		return err
	}

	weight := linreg.InitialWeight()
	if *weights != "" {
		ckpt, err := serialization.ReadFile(*weights)
		if err != nil {
			return err
		}
		if weight, err = ckpt.Tensor("weight"); err != nil {
			return err
		}
	}

	p, err := linreg.Gradients(cpu.New(), linreg.XOR(), weight)
	if err != nil {
		return err
	}
	fmt.Printf("loss: %v\n\n", p.Loss.Data())
	fmt.Printf("x.grad: \n%v\n\n", p.X.Grad())
	fmt.Printf("w.grad: \n%v\n\n", p.W.Grad())
	return nil
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	defaults := linreg.DefaultTrainConfig()
	steps := fs.Int("steps", defaults.Steps, "Number of optimizer steps")
	logEvery := fs.Int("log-every", defaults.LogEvery, "Print the loss every N steps (0 = quiet)")
	optName := fs.String("optimizer", "sgd", "Optimizer: sgd or adam")
	lr := fs.Float64("lr", 0.1, "Learning rate")
	momentum := fs.Float64("momentum", 0, "SGD momentum factor")
	withBias := fs.Bool("bias", false, "Add a bias term to the linear layer")
	seed := fs.Uint64("seed", 0, "Xavier-initialize the weight with this seed (0 = start from [[0.5, -0.5]])")
	workers := fs.Int("workers", 0, "Kernel worker goroutines (0 = NumCPU)")
	save := fs.String("save", "", "Write the trained parameters to this SafeTensors file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var opt optim.Optimizer
	switch *optName {
	case "sgd":
		opt = optim.NewSGD(optim.SGDConfig{LR: *lr, Momentum: *momentum})
	case "adam":
		opt = optim.NewAdam(optim.AdamConfig{LR: *lr})
	default:
		return fmt.Errorf("unknown optimizer %q", *optName)
	}

	model, err := newModel(*seed, *withBias)
	if err != nil {
		return err
	}

	backendCfg := cpu.DefaultConfig()
	if *workers > 0 {
		backendCfg.Parallel.Workers = *workers
	}

	fmt.Printf("Training linear layer on XOR (%s, lr=%g, steps=%d)\n", *optName, opt.GetLR(), *steps)
	losses, err := linreg.Train(cpu.NewWithConfig(backendCfg), linreg.XOR(), model, opt,
		linreg.TrainConfig{
			Steps:    *steps,
			LogEvery: *logEvery,
			OnLog: func(step int, loss float64) {
				fmt.Printf("step %4d: loss=%.6f\n", step, loss)
			},
		})
	if err != nil {
		return err
	}

	fmt.Printf("\nfinal loss: %.6f\n", losses[len(losses)-1])
	for _, p := range model.Parameters() {
		fmt.Printf("%s: \n%v\n", p.Name(), p.Value())
	}

	if *save != "" {
		meta := map[string]string{"optimizer": *optName, "steps": fmt.Sprint(*steps)}
		if err := serialization.WriteFile(*save, nn.StateDict(model), meta); err != nil {
			return err
		}
		fmt.Printf("\nsaved %s\n", *save)
	}
	return nil
}

func newModel(seed uint64, withBias bool) (*nn.Linear, error) {
	if seed != 0 {
		return nn.NewLinear(2, 1, withBias, rand.New(rand.NewPCG(seed, seed))), nil
	}
	var bias *tensor.Array
	if withBias {
		bias = tensor.Zeros(tensor.Shape{1})
	}
	return nn.NewLinearFrom(linreg.InitialWeight(), bias)
}
