package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/events"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/listing"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/model"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/ui"
	"github.com/ssatama/rescue-dog-aggregator-sub008/internal/views"
)

var browseCmd = &cobra.Command{
	Use:     "browse",
	GroupID: "listing",
	Short:   "Browse dogs interactively",
	Long: `Browse dogs interactively.

The listing reloads as you change filters; type "help" at the prompt for
the list of commands. With --follow the listing refreshes itself whenever
the aggregator announces catalogue changes on NATS (requires nats.url).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		page, _ := cmd.Flags().GetInt("page")
		if page < 1 {
			return fmt.Errorf("--page must be at least 1")
		}
		q, err := startQuery(cmd, page)
		if err != nil {
			return err
		}

		known := q.Known
		if known == nil {
			orgs, err := gateway.ListOrganizations(ctx)
			if err != nil {
				logger.Warn("organization directory unavailable; organization filters disabled", zap.Error(err))
			} else {
				known = model.NewOrganizationSet(orgs)
			}
		}

		var pub events.Publisher = &events.NoopPublisher{}
		if cfg.NATSURL != "" {
			p, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				logger.Warn("event publishing disabled", zap.Error(err))
			} else {
				pub = p
			}
		}
		defer pub.Close()

		history := listing.NewMemoryHistory(q.Query)
		ctrl := listing.New(gateway,
			listing.WithPageSize(cfg.PageSize),
			listing.WithLogger(logger.Named("listing")),
			listing.WithPublisher(pub),
			listing.WithHistory(history),
			listing.WithOrganizations(known),
			listing.WithDebounce(cfg.Debounce),
		)

		s := &session{
			ctrl:    ctrl,
			history: history,
			store:   views.NewStore(cfg.ViewsFile),
			known:   known,
			out:     cmd.OutOrStdout(),
			st:      styles(cmd.OutOrStdout()),
		}

		if follow, _ := cmd.Flags().GetBool("follow"); follow {
			stopFollow, err := s.follow(ctx)
			if err != nil {
				ctrl.Close()
				return err
			}
			defer stopFollow()
		}

		rendered := make(chan struct{})
		go func() {
			defer close(rendered)
			for range ctrl.Changes() {
				s.render()
			}
		}()

		ctrl.Mount(q.Query, nil)
		err = s.loop(ctx, cmd.InOrStdin())
		ctrl.Close()
		<-rendered
		return err
	},
}

func init() {
	addFilterFlags(browseCmd)
	browseCmd.Flags().Int("page", 1, "start with pages 1..N loaded")
	browseCmd.Flags().Bool("follow", false, "refresh on upstream catalogue changes (NATS)")
}

// session is one interactive browse.
type session struct {
	ctrl    *listing.Controller
	history *listing.MemoryHistory
	store   *views.Store
	known   model.OrganizationSet
	st      *ui.Styles

	mu  sync.Mutex // serializes writes to out
	out io.Writer
}

// follow starts refreshing the listing on upstream change notifications.
// The returned function stops following and waits for it to finish.
func (s *session) follow(ctx context.Context) (func(), error) {
	if cfg.NATSURL == "" {
		return nil, errors.New("--follow requires nats.url to be configured")
	}
	reconnect := make(chan struct{}, 1)
	sub, err := events.NewNATSSubscriber(cfg.NATSURL,
		nats.ReconnectHandler(func(*nats.Conn) {
			select {
			case reconnect <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := events.Follow(ctx, sub, events.TopicAnimalsAll, cfg.Debounce, reconnect, func() {
			if s.ctrl.Refresh() {
				logger.Debug("catalogue changed; refreshing listing")
			}
		})
		if err != nil {
			logger.Warn("following catalogue changes stopped", zap.Error(err))
		}
	}()
	return func() {
		cancel()
		<-done
		_ = sub.Close()
	}, nil
}

// loop reads commands until quit, EOF or ctx is done.
func (s *session) loop(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := s.exec(line)
			if err != nil {
				s.println(s.st.Warn(err.Error()))
			}
			if quit {
				return nil
			}
		}
	}
}

// exec runs one prompt command and reports whether the session should end.
func (s *session) exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		s.help()
	case "more", "m":
		if !s.ctrl.LoadMore() {
			s.println(s.st.Muted("nothing more to load right now"))
		}
	case "filter", "f":
		p, err := parsePatch(args)
		if err != nil {
			return false, err
		}
		if !s.ctrl.SetFilter(p) {
			s.println(s.st.Muted("filter unchanged"))
		}
	case "search", "s":
		s.ctrl.SetSearch(strings.Join(args, " "))
	case "clear":
		if !s.ctrl.ClearFilters() {
			s.println(s.st.Muted("no filters to clear"))
		}
	case "retry", "r":
		if !s.ctrl.Retry() {
			s.println(s.st.Muted("nothing to retry"))
		}
	case "refresh":
		if !s.ctrl.Refresh() {
			s.println(s.st.Muted("busy; try again when loading finishes"))
		}
	case "back", "b":
		if q, ok := s.history.Back(); ok {
			s.ctrl.Navigate(q)
		}
	case "forward":
		if q, ok := s.history.Forward(); ok {
			s.ctrl.Navigate(q)
		}
	case "show":
		s.render()
	case "save":
		if len(args) == 0 {
			return false, errors.New("usage: save NAME [description]")
		}
		filter := s.ctrl.Snapshot().Filter
		if err := s.store.Put(args[0], strings.Join(args[1:], " "), filter, s.known); err != nil {
			return false, err
		}
		s.println(s.st.Muted(fmt.Sprintf("saved view %q (%s)", args[0], ui.FilterSummary(filter))))
	case "open":
		if len(args) != 1 {
			return false, errors.New("usage: open NAME")
		}
		v, err := s.store.Get(args[0])
		if err != nil {
			return false, err
		}
		if !s.ctrl.SetFilter(model.PatchFrom(v.Filter)) {
			s.println(s.st.Muted("view matches the current filter"))
		}
	case "views":
		entries, err := s.store.List()
		if err != nil {
			return false, err
		}
		for _, e := range entries {
			s.println(fmt.Sprintf("%s  %s", s.st.Command(e.Name), s.st.Muted(ui.FilterSummary(e.Filter))))
		}
	default:
		return false, fmt.Errorf("unknown command %q (type help)", name)
	}
	return false, nil
}

func (s *session) render() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := printSnapshot(s.out, s.ctrl.Snapshot()); err != nil {
		logger.Debug("rendering listing", zap.Error(err))
	}
}

func (s *session) println(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, line)
}

var sessionHelp = [][2]string{
	{"more", "load the next page"},
	{"filter k=v ...", "set filters: search breed org sex size age country to-country to-region (v=any clears)"},
	{"search TEXT", "search (applied after you stop typing)"},
	{"clear", "clear all filters"},
	{"retry", "retry the failed request"},
	{"refresh", "reload the pages shown"},
	{"back, forward", "move through filter history"},
	{"save NAME [desc]", "save the current filter as a view"},
	{"open NAME", "apply a saved view"},
	{"views", "list saved views"},
	{"show", "print the listing again"},
	{"quit", "leave"},
}

func (s *session) help() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range sessionHelp {
		fmt.Fprintf(s.out, "  %s %s\n", s.st.Command(fmt.Sprintf("%-18s", h[0])), h[1])
	}
}
