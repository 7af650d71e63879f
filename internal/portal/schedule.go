package portal

import (
	"context"
	"fmt"
	"time"

	"github.com/iprlic/vern-raspored/internal/logger"
	"github.com/iprlic/vern-raspored/internal/schedule"
	"github.com/iprlic/vern-raspored/internal/webforms"
)

// weekPicker is the control whose change event advances the schedule.
const weekPicker = "puiDatum"

// WeekForm builds the postback that switches the schedule to the week
// starting on monday. state must come from the previous response.
func WeekForm(state webforms.State, monday time.Time) map[string]string {
	return webforms.NewForm(state).
		Event(weekPicker, "").
		Set(weekPicker, schedule.WeekLabel(monday)).
		Values()
}

// FetchSchedule scrapes weeks consecutive weeks starting with the week of
// startMonday and returns the classes in the order they were encountered.
// Any request or parse failure aborts the whole scrape.
func (p *Portal) FetchSchedule(ctx context.Context, startMonday time.Time, weeks int) ([]schedule.Class, error) {
	res, err := p.client.Get(ctx, p.ScheduleURL())
	if err != nil {
		return nil, fmt.Errorf("fetching schedule page: %w", err)
	}
	doc, err := p.parse(res)
	if err != nil {
		return nil, err
	}
	state := webforms.ExtractState(doc)

	classes := make([]schedule.Class, 0)
	monday := startMonday

	for week := 1; week <= weeks; week++ {
		res, err := p.client.Post(ctx, p.ScheduleURL(), WeekForm(state, monday))
		if err != nil {
			return nil, fmt.Errorf("fetching week %d (%s): %w", week, monday.Format(time.DateOnly), err)
		}
		doc, err := p.parse(res)
		if err != nil {
			return nil, err
		}

		found, err := ParseWeek(doc, week, p.loc)
		if err != nil {
			return nil, err
		}
		classes = append(classes, found...)

		state = webforms.ExtractState(doc)
		if state.Empty() && week < weeks {
			logger.Warn("Week page carried no postback state", logger.Fields{"week": week})
		}

		logger.Info("Fetched week", logger.Fields{
			"week":    week,
			"monday":  monday.Format(time.DateOnly),
			"classes": len(found),
		})
		logger.IncrCounter("schedule.weeks")
		monday = monday.AddDate(0, 0, 7)
	}

	logger.SetGauge("schedule.classes", float64(len(classes)))
	return classes, nil
}
