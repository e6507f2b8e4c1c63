package media

import _ "embed"

// DefaultAvatarSVG is served for users that never uploaded an avatar.
//
//go:embed avatar.svg
var DefaultAvatarSVG []byte
