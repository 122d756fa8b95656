package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"asme-site/pkg/listing"
	"asme-site/services/admin/internal/entity"
	"asme-site/services/admin/internal/usecase"

	"github.com/spf13/cobra"
)

// collectionCmd builds the list/select/bulk command tree for one collection.
// svcFn is resolved at run time because services are wired in PersistentPreRunE.
func collectionCmd[E usecase.Entity, P usecase.Patch](
	use, short string,
	svcFn func() usecase.CollectionUseCase[E, P],
	header []string,
	row func(E) []string,
) *cobra.Command {
	root := &cobra.Command{Use: use, Short: short}

	var (
		view     string
		search   string
		kind     string
		sortKey  string
		page     int
		pageSize int
	)
	query := func() listing.Query {
		return listing.Query{
			View:     listing.ParseView(view),
			Search:   search,
			Kind:     kind,
			Sort:     listing.ParseSort(sortKey),
			Page:     page,
			PageSize: pageSize,
		}
	}
	queryFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&view, "view", "active", "active or archived")
		c.Flags().StringVar(&search, "search", "", "case-insensitive substring search")
		c.Flags().StringVar(&kind, "kind", listing.FilterAll, "kind filter value or \"all\"")
		c.Flags().StringVar(&sortKey, "sort", string(listing.SortDateDesc), "date_desc, date_asc, kind_asc or kind_desc")
		c.Flags().IntVar(&page, "page", 0, "zero-based page index")
		c.Flags().IntVar(&pageSize, "page-size", 0, "page size (0 = configured default)")
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List one page of records",
		Example: fmt.Sprintf(`  asmectl %[1]s list
  asmectl %[1]s list --view archived --search reforma --sort date_asc`, use),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svcFn().List(cmd.Context(), query())
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(result)
			}
			if result.Empty() {
				fmt.Println("No hay registros.")
				return nil
			}
			rows := make([][]string, len(result.Items))
			for i, item := range result.Items {
				rows[i] = row(item)
			}
			printTable(header, rows)
			fmt.Printf("\nPágina %d de %d (%d registros)\n", result.Page+1, result.TotalPages, result.Total)
			return nil
		},
	}
	queryFlags(list)

	single := func(name, short string, fn func(uc usecase.CollectionUseCase[E, P], cmd *cobra.Command, id string) (listing.BulkResult, error)) *cobra.Command {
		return &cobra.Command{
			Use:   name + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				result, err := fn(svcFn(), cmd, args[0])
				if err != nil {
					return err
				}
				return printResult(result)
			},
		}
	}

	archive := single("archive", "Archive a record", func(uc usecase.CollectionUseCase[E, P], cmd *cobra.Command, id string) (listing.BulkResult, error) {
		return uc.Archive(cmd.Context(), owner, id)
	})
	unarchive := single("unarchive", "Restore an archived record", func(uc usecase.CollectionUseCase[E, P], cmd *cobra.Command, id string) (listing.BulkResult, error) {
		return uc.Unarchive(cmd.Context(), owner, id)
	})
	del := single("delete", "Permanently delete a record and its media", func(uc usecase.CollectionUseCase[E, P], cmd *cobra.Command, id string) (listing.BulkResult, error) {
		return uc.Delete(cmd.Context(), owner, id)
	})

	sel := &cobra.Command{
		Use:   "select [id...]",
		Short: "Toggle ids in the stored selection, or show it when no id is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := svcFn()
			if len(args) == 0 {
				state, err := uc.Selection(cmd.Context(), owner)
				if err != nil {
					return err
				}
				return printSelection(state)
			}
			var state usecase.SelectionState
			for _, id := range args {
				var err error
				if state, err = uc.Toggle(cmd.Context(), owner, id); err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
			}
			return printSelection(state)
		},
	}

	selectPage := &cobra.Command{
		Use:   "select-page",
		Short: "Select every record of a page, or clear them if all are selected",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := svcFn().SelectPage(cmd.Context(), owner, query())
			if err != nil {
				return err
			}
			return printSelection(state)
		},
	}
	queryFlags(selectPage)

	clearSel := &cobra.Command{
		Use:   "clear-selection",
		Short: "Empty the stored selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return svcFn().ClearSelection(cmd.Context(), owner)
		},
	}

	bulk := &cobra.Command{
		Use:   "bulk <archive|unarchive|delete> [id...]",
		Short: "Apply an action to the given ids or to the stored selection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := svcFn().Bulk(cmd.Context(), owner, args[0], args[1:])
			if err != nil {
				return err
			}
			return printResult(result)
		},
	}

	root.AddCommand(list, archive, unarchive, del, sel, selectPage, clearSel, bulk)
	return root
}

func postsCmd() *cobra.Command {
	return collectionCmd("posts", "Manage blog posts",
		func() usecase.CollectionUseCase[*entity.BlogPost, entity.BlogPostPatch] { return svc.Posts },
		[]string{"ID", "TÍTULO", "TIPO", "AUTOR", "FECHA"},
		func(p *entity.BlogPost) []string {
			return []string{p.ID, truncate(p.Title, 48), string(p.Type), p.Author, formatDate(p.CreatedAt)}
		})
}

func legalPostsCmd() *cobra.Command {
	return collectionCmd("legal-posts", "Manage legal blog posts",
		func() usecase.CollectionUseCase[*entity.LegalBlogPost, entity.LegalBlogPostPatch] {
			return svc.LegalPosts
		},
		[]string{"ID", "TÍTULO", "CATEGORÍA", "AUTOR", "FECHA"},
		func(p *entity.LegalBlogPost) []string {
			return []string{p.ID, truncate(p.Title, 48), string(p.Category), p.Author, formatDate(p.CreatedAt)}
		})
}

func clientsCmd() *cobra.Command {
	return collectionCmd("clients", "Manage clients",
		func() usecase.CollectionUseCase[*entity.Client, entity.ClientPatch] { return svc.Clients },
		[]string{"ID", "NOMBRE", "CORREO", "EMPRESA", "SERVICIO"},
		func(c *entity.Client) []string {
			return []string{c.ID, c.Name, c.Email, c.Company, string(c.Service)}
		})
}

func casosCmd() *cobra.Command {
	return collectionCmd("casos", "Manage legal cases",
		func() usecase.CollectionUseCase[*entity.Caso, entity.CasoPatch] { return svc.Casos },
		[]string{"ID", "EXPEDIENTE", "TÍTULO", "CLIENTE", "ESTADO"},
		func(c *entity.Caso) []string {
			return []string{c.ID, c.CaseNumber, truncate(c.Title, 40), c.ClientName, string(c.Status)}
		})
}

func appointmentsCmd() *cobra.Command {
	return collectionCmd("appointments", "Manage appointment requests",
		func() usecase.CollectionUseCase[*entity.Appointment, entity.AppointmentPatch] {
			return svc.Appointments
		},
		[]string{"ID", "NOMBRE", "CORREO", "SERVICIO", "ESTADO", "FECHA"},
		func(a *entity.Appointment) []string {
			date := "-"
			if a.PreferredDate != nil {
				date = formatDate(*a.PreferredDate)
			}
			return []string{a.ID, a.Name, a.Email, a.Service, string(a.Status), date}
		})
}

func printTable(header []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r, "\t"))
	}
	w.Flush()
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func printResult(r listing.BulkResult) error {
	if jsonOutput {
		return printJSON(r)
	}
	fmt.Println(r.Summary())
	for _, id := range r.Failed {
		fmt.Printf("  falló %s: %s\n", id, r.Error)
	}
	for _, m := range r.MediaFailures {
		fmt.Printf("  archivo pendiente %s (%s): %s\n", m.Key, m.RecordID, m.Error)
	}
	return nil
}

func printSelection(s usecase.SelectionState) error {
	if jsonOutput {
		return printJSON(s)
	}
	fmt.Printf("%d seleccionados\n", s.Count)
	for _, id := range s.IDs {
		fmt.Println(" ", id)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
