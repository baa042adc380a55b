package menu

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/larriantoniy/tg_order_bot/internal/domain"
	"github.com/larriantoniy/tg_order_bot/internal/ports"
)

type entry struct {
	key  string // нормализованное имя
	item domain.CatalogItem
}

// Matcher сопоставляет текст с позициями меню по нормализованному имени:
// точное совпадение, затем самое длинное имя внутри фрагмента,
// затем самое короткое имя, содержащее фрагмент.
type Matcher struct {
	logger  *slog.Logger
	entries []entry
}

func NewMatcher(items []domain.CatalogItem, logger *slog.Logger) (*Matcher, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	entries := make([]entry, 0, len(items))
	for _, it := range items {
		key := Normalize(it.Name)
		if key == "" {
			logger.Warn("catalog item without name, skipping", "article_id", it.ArticleID)
			continue
		}
		entries = append(entries, entry{key: key, item: it})
	}
	if len(entries) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	logger.Info("menu matcher ready", "items", len(entries))
	return &Matcher{logger: logger, entries: entries}, nil
}

// LoadMatcher читает каталог из репозитория и строит матчер
func LoadMatcher(ctx context.Context, repo ports.CatalogRepo, logger *slog.Logger) (*Matcher, error) {
	items, err := repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewMatcher(items, logger)
}

func (m *Matcher) Match(ctx context.Context, fragment string) (domain.CatalogItem, bool) {
	q := Normalize(fragment)
	if q == "" {
		return domain.CatalogItem{}, false
	}

	for _, e := range m.entries {
		if e.key == q {
			return e.item, true
		}
	}

	// "quattro formaggi gross" -> "quattro formaggi"
	var best *entry
	for i := range m.entries {
		e := &m.entries[i]
		if containsWords(q, e.key) && (best == nil || len(e.key) > len(best.key)) {
			best = e
		}
	}
	if best != nil {
		return best.item, true
	}

	// "hawaii" -> "pizza hawaii"
	for i := range m.entries {
		e := &m.entries[i]
		if containsWords(e.key, q) && (best == nil || len(e.key) < len(best.key)) {
			best = e
		}
	}
	if best != nil {
		return best.item, true
	}

	m.logger.Debug("no catalog match", "fragment", fragment)
	return domain.CatalogItem{}, false
}

// containsWords needle входит в haystack по границам слов
func containsWords(haystack, needle string) bool {
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}

// Normalize приводит текст к виду для сравнения: без регистра, диакритики и пунктуации.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	// Caser хранит состояние, на каждый вызов свой
	folded := cases.Fold().String(stripped)

	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}
