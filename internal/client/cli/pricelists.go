package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dverenev/priceadmin/internal/client/forms"
	"github.com/dverenev/priceadmin/internal/client/models"
	"github.com/dverenev/priceadmin/internal/client/theme"
)

// list fetches and prints a page of price lists. Optional arguments:
//
//	list [search terms...]
//
// Search terms are matched against names on the server.
func (a *App) list(ctx context.Context, args []string) {
	q := models.ListQuery{Page: 1, Limit: 20, SortBy: models.SortByUpdatedAt, Direction: models.SortDesc}
	if len(args) > 0 {
		q.Search = strings.Join(args, " ")
	}

	items, count, err := a.store.List(ctx, q)
	if err != nil {
		printlnFn("Failed to load price lists. Type 'list' to try again.")
		return
	}
	if len(items) == 0 {
		if q.Search != "" {
			printlnFn(fmt.Sprintf("No price lists match %q.", q.Search))
		} else {
			printlnFn("No price lists yet. Type 'create' to add one.")
		}
		return
	}

	printlnFn(fmt.Sprintf("%-8s %-40s %s", "ID", "NAME", "UPDATED"))
	for _, item := range items {
		printlnFn(fmt.Sprintf("%-8d %-40s %s", item.ID, item.Name, item.UpdatedAt.Format("2006-01-02 15:04")))
	}
	printlnFn(fmt.Sprintf("%d of %d total", len(items), count))
}

func (a *App) show(ctx context.Context) {
	id, err := a.promptID("Enter price list id to show")
	if err != nil {
		return
	}

	item, err := a.store.Get(ctx, id)
	if err != nil {
		printlnFn("Price list not found. Type 'list' to see what exists.")
		return
	}

	printlnFn(fmt.Sprintf("ID:      %d", item.ID))
	printlnFn(fmt.Sprintf("Name:    %s", item.Name))
	printlnFn(fmt.Sprintf("Created: %s", item.CreatedAt.Format("2006-01-02 15:04")))
	printlnFn(fmt.Sprintf("Updated: %s", item.UpdatedAt.Format("2006-01-02 15:04")))
}

// create prompts for a name and submits it once. Name availability is checked
// first so an obvious duplicate fails before the round trip.
func (a *App) create(ctx context.Context) {
	form := forms.NewCreateForm(func(ctx context.Context, data forms.Data) error {
		_, err := a.store.Create(ctx, models.CreatePriceListRequest{Name: data.Name})
		return err
	}, a.log)
	defer form.Close()

	name, err := getSimpleText(a.reader, "Enter price list name", os.Stdout)
	if err != nil {
		return
	}
	form.SetName(name)

	if available, err := a.store.CheckName(ctx, name, 0); err == nil && !available {
		printlnFn(fmt.Sprintf("A price list named %q already exists.", name))
		return
	}

	if err := form.Submit(ctx); err != nil {
		if msg := form.FieldError("name"); msg != "" {
			printlnFn(msg)
		}
		return
	}
}

// edit opens an existing record for renaming. Each entered line replaces the
// name; changes persist on their own shortly after the user pauses, and a
// final empty line closes the editor, flushing anything still pending.
func (a *App) edit(ctx context.Context) {
	id, err := a.promptID("Enter price list id to edit")
	if err != nil {
		return
	}

	item, err := a.store.Get(ctx, id)
	if err != nil {
		printlnFn("Price list not found. Type 'list' to see what exists.")
		return
	}

	form := forms.NewEditForm(ctx, forms.Data{Name: item.Name}, func(ctx context.Context, data forms.Data) error {
		_, err := a.store.Update(ctx, id, models.UpdatePriceListRequest{Name: data.Name})
		return err
	}, forms.DefaultSaveDelay, a.log)
	defer form.Close()

	printlnFn(fmt.Sprintf("Editing %q. Type a new name, empty line to finish.", item.Name))
	for {
		line, err := a.reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" || err != nil {
			break
		}
		form.SetName(line)
		if msg := form.FieldError("name"); msg != "" {
			printlnFn(msg)
		}
	}

	if form.Dirty() {
		if err := form.Submit(ctx); err != nil {
			if msg := form.FieldError("name"); msg != "" {
				printlnFn(msg)
			}
		}
	}
}

func (a *App) delete(ctx context.Context) {
	id, err := a.promptID("Enter price list id to delete")
	if err != nil {
		return
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete price list %d?", id), os.Stdout)
	if err != nil || !ok {
		return
	}

	_ = a.store.Delete(ctx, id)
}

// bulkDelete removes several price lists at once. The operation is
// all-or-nothing: one failed delete restores everything.
func (a *App) bulkDelete(ctx context.Context) {
	raw, err := getSimpleText(a.reader, "Enter price list ids, comma-separated", os.Stdout)
	if err != nil {
		return
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			printlnFn(fmt.Sprintf("Not a valid id: %s", part))
			return
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %d price lists?", len(ids)), os.Stdout)
	if err != nil || !ok {
		return
	}

	_ = a.store.BulkDelete(ctx, ids)
}

// themeCmd shows or sets the display theme: "theme" prints the current
// preference, "theme dark" changes it.
func (a *App) themeCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Theme: %s", a.themes.Current(ctx)))
		return
	}

	switch args[0] {
	case "light", "dark", "system":
		if err := a.themes.Set(ctx, theme.Parse(args[0])); err != nil {
			printlnFn("Failed to save theme preference.")
			return
		}
		printlnFn(fmt.Sprintf("Theme set to %s.", args[0]))
	default:
		printlnFn("Usage: theme [light|dark|system]")
	}
}

func (a *App) promptID(prompt string) (int64, error) {
	raw, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		printlnFn(fmt.Sprintf("Not a valid id: %s", raw))
		return 0, err
	}
	return id, nil
}
