package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neuralforge/neuralforge/internal/mailer"
)

func emailCmd() *cobra.Command {
	var (
		recipient string
		subject   string
		body      string
		bulkCSV   string
	)

	cmd := &cobra.Command{
		Use:   "email",
		Short: "Send email via SMTP",
		Long: `Sends a single message, or a templated batch when --bulk points at a
CSV file. The CSV's first row names template fields; an "email" column is
required. Placeholders like {name} in subject and body are filled per row.

Credentials come from SMTP_USERNAME and SMTP_PASSWORD.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			m, err := mailer.New(cfg.SMTP.Server, cfg.SMTP.Port, cfg.SMTP.From)
			if err != nil {
				return err
			}

			if bulkCSV != "" {
				recipients, err := readRecipients(bulkCSV)
				if err != nil {
					return err
				}
				result := m.SendBulk(recipients, subject, body)
				fmt.Printf("📧 Sent %d message(s), %d failed\n", result.Sent, result.Failed)
				for _, e := range result.Errors {
					fmt.Fprintf(os.Stderr, "  %s\n", e)
				}
				if result.Failed > 0 {
					return fmt.Errorf("%d message(s) failed", result.Failed)
				}
				return nil
			}

			if err := m.Send(recipient, subject, body); err != nil {
				return err
			}
			fmt.Printf("📧 Email sent to %s\n", recipient)
			return nil
		},
	}

	cmd.Flags().StringVar(&recipient, "recipient", "user@example.com", "recipient address")
	cmd.Flags().StringVar(&subject, "subject", "Message from NeuralForge", "subject line")
	cmd.Flags().StringVar(&body, "body", "Hello from NeuralForge!", "message body")
	cmd.Flags().StringVar(&bulkCSV, "bulk", "", "CSV file of recipients for a templated batch send")
	return cmd
}

// readRecipients parses a CSV whose header row names template fields. The
// "email" column is the target address.
func readRecipients(path string) ([]mailer.Recipient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipient file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipient file: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("recipient file needs a header row and at least one recipient")
	}

	header := records[0]
	emailCol := -1
	for i, name := range header {
		if name == "email" {
			emailCol = i
			break
		}
	}
	if emailCol < 0 {
		return nil, fmt.Errorf(`recipient file needs an "email" column`)
	}

	var recipients []mailer.Recipient
	for _, row := range records[1:] {
		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				fields[name] = row[i]
			}
		}
		recipients = append(recipients, mailer.Recipient{Email: row[emailCol], Fields: fields})
	}
	return recipients, nil
}
