// internal/adapters/out/mail/launch_mailer.go
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mintapp "github.com/metadataee/metadata/internal/application/mint"
)

// EmailClient is the low-level mail transport (SendGrid in production).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// LaunchMailer implements mintapp.LaunchNotifier by mailing a launch report
// to every configured recipient.
type LaunchMailer struct {
	client      EmailClient
	fromAddress string
	recipients  []string
	network     string
}

// NewLaunchMailer parses a comma separated recipient list. network is only
// used in the subject line.
func NewLaunchMailer(client EmailClient, fromAddress, recipients, network string) (*LaunchMailer, error) {
	if client == nil {
		return nil, errors.New("launch mailer: email client is nil")
	}
	from := strings.TrimSpace(fromAddress)
	if from == "" {
		return nil, errors.New("launch mailer: from address is empty")
	}
	to := SplitRecipients(recipients)
	if len(to) == 0 {
		return nil, errors.New("launch mailer: no recipients")
	}
	return &LaunchMailer{
		client:      client,
		fromAddress: from,
		recipients:  to,
		network:     strings.TrimSpace(network),
	}, nil
}

// NotifyLaunch sends the report to each recipient; failures are joined.
func (m *LaunchMailer) NotifyLaunch(ctx context.Context, res mintapp.Result) error {
	subject := LaunchSubject(res, m.network)
	body := LaunchBody(res)

	var errs []error
	for _, to := range m.recipients {
		if err := m.client.Send(ctx, m.fromAddress, to, subject, body); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", to, err))
		}
	}
	return errors.Join(errs...)
}

func LaunchSubject(res mintapp.Result, network string) string {
	s := fmt.Sprintf("Token launched: %s (%s)", res.Name, res.Symbol)
	if network != "" {
		s += " on " + network
	}
	return s
}

func LaunchBody(res mintapp.Result) string {
	verified := "not checked"
	if res.Verified {
		verified = "supply and revoked authorities confirmed on chain"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name:        %s\n", res.Name)
	fmt.Fprintf(&b, "Symbol:      %s\n", res.Symbol)
	fmt.Fprintf(&b, "Mint:        %s\n", res.Mint.ToBase58())
	fmt.Fprintf(&b, "Holder:      %s\n", res.HolderAccount.ToBase58())
	fmt.Fprintf(&b, "Metadata:    %s\n", res.Metadata.ToBase58())
	fmt.Fprintf(&b, "URI:         %s\n", res.MetadataURI)
	fmt.Fprintf(&b, "Supply:      %d base units (%d decimals)\n", res.BaseUnits, res.Decimals)
	fmt.Fprintf(&b, "Signature:   %s\n", res.Signature)
	fmt.Fprintf(&b, "Explorer:    %s\n", res.ExplorerURL)
	fmt.Fprintf(&b, "Read-back:   %s\n", verified)
	return b.String()
}

// SplitRecipients splits on commas and semicolons, dropping blanks and
// duplicates.
func SplitRecipients(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		addr := strings.TrimSpace(f)
		if addr == "" {
			continue
		}
		key := strings.ToLower(addr)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, addr)
	}
	return out
}
