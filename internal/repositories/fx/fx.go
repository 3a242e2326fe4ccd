package fx

import (
	"github.com/orgball2608/affiliate-post-bot/internal/repositories/post"
	"go.uber.org/fx"
)

var Module = fx.Options(
	post.Module,
)
