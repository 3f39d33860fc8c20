package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/crickstat/xfactor/internal/domain/career"
	"github.com/crickstat/xfactor/internal/domain/player"
	"github.com/crickstat/xfactor/internal/platform/logging"
)

// The full name hides in an analytics bootstrap near the top of each page;
// only the head of the script is worth scanning.
var omniPageNameRegex = regexp.MustCompile(`(?i)var omniPageName.+:(.+)";`)

const scriptScanWindow = 101

// IdentityService merges a career's external references into canonical
// player records: one master record under the scorecard-name slug, one
// under the full-name slug, and index-only records under each name token.
type IdentityService struct {
	players player.Repository
	logger  *logging.Logger
}

func NewIdentityService(players player.Repository, logger *logging.Logger) *IdentityService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IdentityService{players: players, logger: logger}
}

// Resolve fills the career's name fields from the document when they are
// still blank and links every derived slug to the career's reference.
// Missing name data is not an error: the fields stay blank and the next
// ingestion pass tries again.
func (s *IdentityService) Resolve(ctx context.Context, c *career.Career, doc SourceDocument) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentityService.Resolve")
	defer span.End()

	if c == nil {
		return fmt.Errorf("%w: career is required", ErrInvalidInput)
	}

	if c.Name == "" {
		if name, ok := nameFromPageTitle(doc.PageTitle); ok {
			c.Name = name
		} else {
			s.logger.DebugContext(ctx, "display name unavailable this pass", "player_ref", c.PlayerRef)
		}
	}

	if c.FullName == "" {
		for _, script := range doc.Scripts {
			if full, ok := ExtractFullName(script); ok {
				c.FullName = full
				break
			}
		}
	}

	if c.Name != "" {
		slug := player.Slugify(c.Name)
		if slug != "" {
			if _, err := s.players.FindOrCreateBySlug(ctx, slug); err != nil {
				return fmt.Errorf("resolve master player slug=%s: %w", slug, err)
			}
			if err := s.players.SetIdentity(ctx, slug, c.Name, c.FullName, c.PlayerRef); err != nil {
				return fmt.Errorf("set master player identity slug=%s: %w", slug, err)
			}
			if err := s.linkSlug(ctx, slug, c, true); err != nil {
				return err
			}
			c.PlayerSlug = slug
		}
	}

	if c.FullName != "" {
		slug := player.Slugify(c.FullName)
		if slug != "" && slug != c.PlayerSlug {
			if _, err := s.players.FindOrCreateBySlug(ctx, slug); err != nil {
				return fmt.Errorf("resolve full-name player slug=%s: %w", slug, err)
			}
			if err := s.linkSlug(ctx, slug, c, true); err != nil {
				return err
			}
		}

		for _, token := range strings.Fields(c.FullName) {
			slug := player.Slugify(token)
			if slug == "" {
				continue
			}
			if _, err := s.players.FindOrCreateBySlug(ctx, slug); err != nil {
				return fmt.Errorf("resolve token player slug=%s: %w", slug, err)
			}
			if err := s.linkSlug(ctx, slug, c, false); err != nil {
				return err
			}
		}
	}

	return nil
}

// linkSlug unions the career's reference into the slug's sets. Token slugs
// get the player reference only; owning slugs also back-reference the
// career record.
func (s *IdentityService) linkSlug(ctx context.Context, slug string, c *career.Career, owning bool) error {
	if err := s.players.AddPlayerRef(ctx, slug, c.PlayerRef); err != nil {
		return fmt.Errorf("add player ref slug=%s: %w", slug, err)
	}
	if !owning || c.ID == "" {
		return nil
	}
	if err := s.players.AddCareerID(ctx, slug, c.ID); err != nil {
		return fmt.Errorf("add career id slug=%s: %w", slug, err)
	}
	return nil
}

// ExtractFullName pulls the captured name out of one script block, looking
// only at the block's head. Reports false when the pattern is absent.
func ExtractFullName(script string) (string, bool) {
	head := script
	if len(head) > scriptScanWindow {
		head = head[:scriptScanWindow]
	}
	m := omniPageNameRegex.FindStringSubmatch(head)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", false
	}
	return name, true
}

// nameFromPageTitle cuts the display name out of the section heading, which
// reads "Players and Officials /\n <country> /\n <name>".
func nameFromPageTitle(title string) (string, bool) {
	parts := strings.Split(title, "/\n")
	if len(parts) < 3 {
		return "", false
	}
	name := strings.TrimSpace(parts[2])
	if name == "" {
		return "", false
	}
	return name, true
}
