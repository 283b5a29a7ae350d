package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"field-report-api/config"
	"field-report-api/internal/apiclient"
	"field-report-api/internal/formsession"
	"field-report-api/internal/regioncache"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// regionEvent carries one outcome of a region selection to the prompt loop.
type regionEvent struct {
	locations []regioncache.Location
	err       error
}

// envStore exposes the configured user id as the read-only value store
// consulted at submission time.
type envStore struct {
	userID string
}

func (s envStore) Get(key string) (string, bool) {
	if key == "user_id" && s.userID != "" {
		return s.userID, true
	}
	return "", false
}

type cli struct {
	session *formsession.Session
	regions *regioncache.Cache
	events  chan regionEvent
}

func main() {
	cfg := config.LoadConfig()

	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	client := apiclient.New(baseURL)

	var formName string
	if err := survey.AskOne(&survey.Select{
		Message: "Form type:",
		Options: []string{"Sales visit", "Technician report"},
	}, &formName); err != nil {
		exitOnPromptErr(err)
	}

	form := formsession.SalesVisit()
	if formName == "Technician report" {
		form = formsession.TechnicianReport()
	}

	app := &cli{
		session: formsession.New(form, formsession.Deps{
			Uploader:  client,
			Submitter: client,
			Products:  client,
			Store:     envStore{userID: cfg.UserID},
		}),
		events: make(chan regionEvent, 1),
	}
	app.regions = regioncache.New(client, regioncache.Listener{
		OnLocations: func(region string, locs []regioncache.Location) {
			app.events <- regionEvent{locations: locs}
		},
		OnError: func(region string, err error) {
			app.events <- regionEvent{err: err}
		},
	})

	if err := app.run(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func (a *cli) run(ctx context.Context) error {
	for {
		fmt.Printf("\n--- %s: page %d of %d ---\n", a.session.Form().Type, a.session.Page(), a.session.PageCount())

		for _, spec := range a.session.Form().PageFields(a.session.Page()) {
			if err := a.promptField(ctx, spec); err != nil {
				return err
			}
		}

		options := []string{"Save draft"}
		if a.session.Page() < a.session.PageCount() {
			options = append(options, "Next page")
		} else {
			options = append(options, "Submit")
		}
		if a.session.Page() > 1 {
			options = append(options, "Previous page")
		}
		options = append(options, "Quit")

		var action string
		if err := survey.AskOne(&survey.Select{Message: "Action:", Options: options}, &action); err != nil {
			exitOnPromptErr(err)
		}

		switch action {
		case "Next page":
			a.session.GoNext()
		case "Previous page":
			a.session.GoBack()
		case "Save draft":
			if err := a.session.SaveDraft(ctx); err != nil {
				fmt.Println("Draft not saved:", err)
				continue
			}
			fmt.Println("Draft saved.")
		case "Submit":
			if err := a.session.SubmitFinal(ctx); err != nil {
				fmt.Println("Submission failed:", err)
				continue
			}
			fmt.Println("Submitted.")
			return nil
		case "Quit":
			return nil
		}
	}
}

// hospitalDerived fields are filled by picking a hospital after the region
// prompt, so they are only re-asked when still unset.
var hospitalDerived = map[string]struct{}{
	"rumah_sakit":        {},
	"alamat_rumah_sakit": {},
	"koordinat_lokasi":   {},
}

func (a *cli) promptField(ctx context.Context, spec formsession.FieldSpec) error {
	if _, derived := hospitalDerived[spec.Key]; derived {
		if _, ok := a.session.Field(spec.Key); ok {
			return nil
		}
	}

	switch spec.Kind {
	case formsession.KindText:
		var out string
		if err := survey.AskOne(&survey.Input{Message: spec.Label + ":", Default: a.currentText(spec.Key)}, &out); err != nil {
			exitOnPromptErr(err)
		}
		a.session.SetField(spec.Key, formsession.Text(out))
		if spec.Key == "serial_number" && strings.TrimSpace(out) != "" {
			if err := a.session.SerialChanged(ctx, out); err != nil {
				fmt.Println("Serial lookup failed:", err)
			}
		}

	case formsession.KindDate:
		var out string
		prompt := &survey.Input{Message: spec.Label + " (YYYY-MM-DD):", Default: time.Now().Format("2006-01-02")}
		validator := func(ans interface{}) error {
			s, _ := ans.(string)
			if strings.TrimSpace(s) == "" {
				return nil
			}
			if _, err := time.Parse("2006-01-02", s); err != nil {
				return errors.New("use the YYYY-MM-DD format")
			}
			return nil
		}
		if err := survey.AskOne(prompt, &out, survey.WithValidator(validator)); err != nil {
			exitOnPromptErr(err)
		}
		if strings.TrimSpace(out) != "" {
			d, _ := time.Parse("2006-01-02", out)
			a.session.SetField(spec.Key, formsession.Date(d))
		}

	case formsession.KindSingleSelect:
		labels := make([]string, len(spec.Options))
		for i, opt := range spec.Options {
			labels[i] = opt.Label
		}
		var picked string
		if err := survey.AskOne(&survey.Select{Message: spec.Label + ":", Options: labels}, &picked); err != nil {
			exitOnPromptErr(err)
		}
		for _, opt := range spec.Options {
			if opt.Label == picked {
				a.session.SetField(spec.Key, formsession.Selection{Value: opt.Value, Label: opt.Label})
				if spec.Key == "region" {
					a.pickHospital(opt.Value)
				}
				break
			}
		}

	case formsession.KindMultiSelect:
		labels := make([]string, len(spec.Options))
		for i, opt := range spec.Options {
			labels[i] = opt.Label
		}
		var picked []string
		if err := survey.AskOne(&survey.MultiSelect{Message: spec.Label + ":", Options: labels}, &picked); err != nil {
			exitOnPromptErr(err)
		}
		checked := make([]string, 0, len(picked))
		for _, opt := range spec.Options {
			for _, label := range picked {
				if opt.Label == label {
					checked = append(checked, opt.Value)
				}
			}
		}
		var other string
		if err := survey.AskOne(&survey.Input{Message: spec.Label + " (other, optional):"}, &other); err != nil {
			exitOnPromptErr(err)
		}
		a.session.SetField(spec.Key, formsession.MultiSelect{Checked: checked, Other: other})

	case formsession.KindCoordinate:
		var out string
		if err := survey.AskOne(&survey.Input{Message: spec.Label + " (lat,lng):"}, &out); err != nil {
			exitOnPromptErr(err)
		}
		parts := strings.SplitN(out, ",", 2)
		if len(parts) == 2 {
			lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if errLat == nil && errLng == nil {
				a.session.SetField(spec.Key, formsession.Coordinate{Latitude: lat, Longitude: lng})
			} else {
				fmt.Println("Coordinate ignored: not a lat,lng pair")
			}
		}

	case formsession.KindImage:
		var path string
		if err := survey.AskOne(&survey.Input{Message: spec.Label + " (file path, optional):"}, &path); err != nil {
			exitOnPromptErr(err)
		}
		path = strings.TrimSpace(path)
		if path != "" {
			a.session.SetField(spec.Key, formsession.Image{
				URI:      path,
				Filename: filepath.Base(path),
				Mime:     mime.TypeByExtension(filepath.Ext(path)),
			})
		}

	case formsession.KindReadOnly:
		if v := a.currentText(spec.Key); v != "" {
			fmt.Printf("%s: %s\n", spec.Label, v)
		}
	}

	return nil
}

// pickHospital resolves the chosen region through the lookup cache and fills
// the hospital, address and coordinate fields from the selected record.
func (a *cli) pickHospital(region string) {
	a.regions.SelectRegion(region)

	var ev regionEvent
	select {
	case ev = <-a.events:
	case <-time.After(15 * time.Second):
		fmt.Println("Hospital lookup timed out; fill the fields manually.")
		return
	}
	if ev.err != nil {
		fmt.Println("Hospital lookup failed:", ev.err)
		return
	}
	if len(ev.locations) == 0 {
		fmt.Println("No hospitals registered for this region.")
		return
	}

	names := make([]string, len(ev.locations))
	for i, loc := range ev.locations {
		names[i] = loc.Name
	}
	var picked string
	if err := survey.AskOne(&survey.Select{Message: "Rumah sakit:", Options: names}, &picked); err != nil {
		exitOnPromptErr(err)
	}

	for _, loc := range ev.locations {
		if loc.Name != picked {
			continue
		}
		a.session.SetField("rumah_sakit", formsession.Text(loc.Name))
		a.session.SetField("alamat_rumah_sakit", formsession.Text(loc.Street))
		if loc.Latitude != nil && loc.Longitude != nil {
			a.session.SetField("koordinat_lokasi", formsession.Coordinate{
				Latitude:  *loc.Latitude,
				Longitude: *loc.Longitude,
			})
		}
		return
	}
}

func (a *cli) currentText(key string) string {
	v, ok := a.session.Field(key)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case formsession.Text:
		return string(t)
	case formsession.ReadOnly:
		return string(t)
	}
	return ""
}

func exitOnPromptErr(err error) {
	if errors.Is(err, terminal.InterruptErr) {
		fmt.Println("Aborted.")
		os.Exit(130)
	}
	log.Fatal(err)
}
