package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ivlev/story2video/internal/config"
	"github.com/ivlev/story2video/internal/encoder"
	"github.com/ivlev/story2video/internal/engine"
	"github.com/ivlev/story2video/internal/logging"
	"github.com/ivlev/story2video/internal/source"
	"github.com/ivlev/story2video/internal/system"
)

func main() {
	textPtr := flag.String("text", "", "Путь к файлу с текстом истории")
	titlePtr := flag.String("title", "", "Заголовок (сырой, будет очищен)")
	presetPtr := flag.String("preset", "", "YAML-пресет кастомизации")
	outputPtr := flag.String("output", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	aspectPtr := flag.String("aspect", "", "Формат кадра: 9:16 или 16:9")
	animationPtr := flag.String("animation", "", "Анимация текста: scroll, fade, typewriter")
	speedPtr := flag.Float64("speed", 0, "Скорость анимации [0.5..2.0]")
	languagePtr := flag.String("language", "", "Код языка (en, hi, es, ...)")
	realtimePtr := flag.Bool("realtime", false, "Рендер в реальном времени (1000/fps мс на кадр)")
	statsPtr := flag.Bool("stats", false, "Отчет о производительности после рендера")
	verbosePtr := flag.Bool("verbose", false, "Подробные логи")

	flag.Parse()

	logging.Init(*verbosePtr)
	logger := logging.WithComponent("cli")

	system.InitResourceLimits(logger)
	if err := system.CheckEncoder(); err != nil {
		logger.Fatal().Err(err).Msg("encoder unavailable")
	}

	if *textPtr == "" {
		logger.Fatal().Msg("flag -text is required")
	}
	textBytes, err := os.ReadFile(*textPtr)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot read story text")
	}
	text := strings.TrimSpace(string(textBytes))

	cust := config.Default()
	if *presetPtr != "" {
		cust, err = config.LoadPreset(*presetPtr)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot load preset")
		}
	}

	// Флаги командной строки перекрывают пресет
	if *aspectPtr != "" {
		cust.AspectRatio = config.AspectRatio(*aspectPtr)
	}
	if *animationPtr != "" {
		cust.TextAnimation = config.Animation(*animationPtr)
	}
	if *speedPtr != 0 {
		cust.Speed = *speedPtr
	}
	if *languagePtr != "" {
		cust.Language = *languagePtr
	}
	cust.Realtime = cust.Realtime || *realtimePtr
	cust.ShowStats = cust.ShowStats || *statsPtr
	cust.Normalize()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := encoder.NewFFmpegSink(log.Logger)
	loader := source.NewLoader(log.Logger)
	renderer := engine.New(sink, loader, log.Logger)

	lastPct := -1
	result, err := renderer.RenderVideo(ctx, text, *titlePtr, cust, func(percent int) {
		// Печатаем каждые 5%, чтобы не засорять консоль
		if percent != lastPct && percent%5 == 0 {
			fmt.Printf("[>] %d%%\n", percent)
			lastPct = percent
		}
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("render failed")
	}

	outputPath := *outputPtr
	if outputPath == "" {
		os.MkdirAll("output", 0755)
		cleanName := strings.ReplaceAll(result.Title, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		outputPath = filepath.Join("output", fmt.Sprintf("%s_%s.webm", cleanName, timestamp))
	}

	if err := os.WriteFile(outputPath, result.Data, 0644); err != nil {
		logger.Fatal().Err(err).Msg("cannot write video")
	}

	fmt.Printf("[+++] Успех! Результат: %s (%d байт, %s)\n", outputPath, len(result.Data), result.MIMEType)
}
