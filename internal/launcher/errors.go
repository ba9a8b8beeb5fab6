package launcher

import (
	"errors"

	"alicia-launcher/internal/config"
	"alicia-launcher/internal/process"
)

var (
	ErrHostWebInfo = errors.New("failed to host web info")
	ErrLaunchGame  = errors.New("can't launch the game")
)

// UserMessage maps a launcher failure to the text shown to the player.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, config.ErrSettings):
		return "Couldn't load the settings file, is the launcher in the correct directory?"
	case errors.Is(err, ErrHostWebInfo):
		return "Couldn't host the web info."
	case errors.Is(err, process.ErrElevationRequired):
		return "Couldn't launch the game, run the launcher as an administrator."
	case errors.Is(err, process.ErrExecutableNotFound):
		return "Couldn't launch the game, is the launcher in the working directory of the game?"
	case errors.Is(err, ErrLaunchGame):
		return "Failed to launch the game, check the console window for more information."
	default:
		return "The launcher failed, check the console window for more information."
	}
}
