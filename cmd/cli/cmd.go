// Command cli runs a single render cycle and prints the page lines to stdout.
//
//	cli -location Paris -generate -prompt "Where should I invest?"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/GregMSThompson/realestate-assistant/internal/bootstrap"
	"github.com/GregMSThompson/realestate-assistant/internal/config"
	"github.com/GregMSThompson/realestate-assistant/internal/dto"
	"github.com/GregMSThompson/realestate-assistant/internal/services"
)

func main() {
	location := flag.String("location", "", "location for the weather and AQI lookups")
	prompt := flag.String("prompt", "", "prompt for text generation (DEFAULTPROMPT when omitted)")
	generate := flag.Bool("generate", false, "generate a response for the prompt")
	flag.Parse()

	// an explicit -prompt "" is sent as is
	var promptArg *string
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "prompt" {
			promptArg = prompt
		}
	})

	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	if err != nil {
		bs.Log.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer bs.Close()

	sampling := services.WithSampling(cfg.VertexTemperature, cfg.VertexMaxTokens)
	gserv := services.NewGenerationService(nil)
	if bs.VertexAdapter != nil {
		gserv = services.NewGenerationService(bs.VertexAdapter, sampling)
	}
	pserv := services.NewPresenterService(bs.WeatherAdapter, bs.AirQualityAdapter, bs.ListingsAdapter, gserv, cfg.DefaultPrompt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	page := pserv.Render(ctx, dto.RenderRequest{
		Location: *location,
		Prompt:   promptArg,
		Generate: *generate,
	})
	for _, line := range page.Lines() {
		fmt.Println(line)
	}
}
