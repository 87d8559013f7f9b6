package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/sirupsen/logrus"

	"github.com/pixil98/go-tilequest/cmd/tilequest/command"
	"github.com/pixil98/go-tilequest/internal/commands"
	"github.com/pixil98/go-tilequest/internal/game"
	"github.com/pixil98/go-tilequest/internal/story"
	"github.com/pixil98/go-tilequest/internal/world"
)

func main() {
	storyline := flag.String("storyline", "assets/storyline", "directory holding the storyline asset")
	storylineID := flag.String("storyline-id", "", "storyline asset id (default \"storyline\")")
	maps := flag.String("maps", "assets/maps", "directory holding the map assets")
	cmds := flag.String("commands", "", "directory holding the command assets (optional)")
	flag.Parse()

	logger := logrus.New()

	if err := validate(*storyline, *storylineID, *maps, *cmds); err != nil {
		logger.WithError(err).Error("authored data is invalid")
		os.Exit(1)
	}

	logger.Info("authored data is valid")
}

func validate(storylinePath, storylineID, mapsPath, cmdsPath string) error {
	st := command.StorageConfig{
		Storyline: command.StorylineConfig{
			AssetConfig: command.AssetConfig[*story.Book]{Path: storylinePath},
			ID:          storylineID,
		},
		Maps: command.AssetConfig[*world.AreaSpec]{Path: mapsPath},
	}

	book, maps, err := st.LoadWorld()
	if err != nil {
		return err
	}

	el := errors.NewErrorList()
	all := maps.GetAll()
	if all[game.StartMap] == nil {
		el.Add(fmt.Errorf("start map %s is missing", game.StartMap))
	}

	placed := map[string]bool{}
	for _, spec := range all {
		for _, n := range spec.NPCNames() {
			placed[n] = true
		}
	}
	for _, q := range book.Quests {
		if !placed[q.Giver] {
			el.Add(fmt.Errorf("quest %s: giver %s is on no map", q.Name, q.Giver))
		}
		if !placed[q.Validator] {
			el.Add(fmt.Errorf("quest %s: validator %s is on no map", q.Name, q.Validator))
		}
	}

	if cmdsPath != "" {
		cmdAssets := command.AssetConfig[*commands.Command]{Path: cmdsPath}
		store, err := cmdAssets.BuildFileStore()
		if err != nil {
			el.Add(fmt.Errorf("loading commands: %w", err))
		} else {
			el.Add(commands.NewHandler(store).CompileAll())
		}
	}

	return el.Err()
}
