package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"weather-reminder/internal/domain/entity"
	"weather-reminder/internal/domain/gateway/mail"
	"weather-reminder/internal/domain/model"
)

func TestElapsedHours(t *testing.T) {
	tests := []struct {
		now  time.Time
		want int64
	}{
		{now: DefaultEpoch, want: 0},
		{now: DefaultEpoch.Add(59 * time.Minute), want: 0},
		{now: DefaultEpoch.Add(2*time.Hour + 30*time.Second), want: 2},
		{now: DefaultEpoch.Add(-time.Minute), want: -1},
		{now: DefaultEpoch.Add(-2 * time.Hour), want: -2},
		{now: time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC), want: 24},
		{now: time.Date(2022, 1, 1, 5, 0, 0, 0, time.FixedZone("", 3*3600)), want: 2},
	}

	for _, tt := range tests {
		if got := ElapsedHours(DefaultEpoch, tt.now); got != tt.want {
			t.Errorf("ElapsedHours(%s) = %d, want %d", tt.now, got, tt.want)
		}
	}
}

func TestIsDueIsPeriodic(t *testing.T) {
	at := func(hour int) int64 {
		return ElapsedHours(DefaultEpoch, time.Date(2022, 1, 1, hour, 0, 0, 0, time.UTC))
	}
	if !IsDue(at(2), 2) || !IsDue(at(4), 2) || IsDue(at(3), 2) {
		t.Fatal("frequency 2 must fire at 02:00 and 04:00 but not at 03:00")
	}

	for frequency := 1; frequency <= 25; frequency++ {
		fired := 0
		for hour := int64(-100); hour < 500; hour++ {
			if IsDue(hour, frequency) {
				if hour%int64(frequency) != 0 {
					t.Fatalf("frequency %d fired at %d", frequency, hour)
				}
				fired++
			}
		}
		if fired != 600/frequency && fired != 600/frequency+1 {
			t.Fatalf("frequency %d fired %d times in 600 hours", frequency, fired)
		}
	}

	if IsDue(0, 0) || IsDue(6, -3) {
		t.Fatal("non positive frequencies are never due")
	}
}

type fakeSubscriptions struct {
	subscriptions []entity.Subscription
}

func (f *fakeSubscriptions) FindDue(_ context.Context, elapsedHours int64) ([]entity.Subscription, error) {
	due := make([]entity.Subscription, 0, len(f.subscriptions))
	for _, subscription := range f.subscriptions {
		if IsDue(elapsedHours, subscription.NotificationFrequency) {
			due = append(due, subscription)
		}
	}
	return due, nil
}

func (f *fakeSubscriptions) FindBySubscriberEmail(context.Context, string) ([]entity.Subscription, error) {
	return nil, errors.New("not used")
}

func (f *fakeSubscriptions) FindByID(context.Context, uint) (*entity.Subscription, error) {
	return nil, errors.New("not used")
}

func (f *fakeSubscriptions) FindOrCreateSubscriber(context.Context, string) (*entity.Subscriber, error) {
	return nil, errors.New("not used")
}

func (f *fakeSubscriptions) Create(context.Context, entity.Subscription) (*entity.Subscription, error) {
	return nil, errors.New("not used")
}

func (f *fakeSubscriptions) UpdateFrequency(context.Context, uint, int) (*entity.Subscription, error) {
	return nil, errors.New("not used")
}

func (f *fakeSubscriptions) DeleteByID(context.Context, uint) error {
	return errors.New("not used")
}

type fakeCities struct {
	forecastLoads map[uint]int
}

func (f *fakeCities) FindAll(context.Context, int, int) ([]entity.City, error) { return nil, nil }

func (f *fakeCities) FindAllWithKeysetPagination(context.Context, uint, int) ([]entity.City, error) {
	return nil, nil
}

func (f *fakeCities) CountAll(context.Context) (int64, error) { return 0, nil }

func (f *fakeCities) FindByID(context.Context, uint) (*entity.City, error) { return nil, nil }

func (f *fakeCities) ReplaceForecasts(context.Context, uint, []entity.WeatherForecast) error {
	return nil
}

func (f *fakeCities) FindByCoordinates(context.Context, float64, float64) (*entity.City, error) {
	return nil, nil
}

func (f *fakeCities) CreateWithForecasts(_ context.Context, city entity.City, _ []entity.WeatherForecast) (*entity.City, error) {
	return &city, nil
}

func (f *fakeCities) FindForecastsByCityID(_ context.Context, cityID uint) ([]entity.WeatherForecast, error) {
	f.forecastLoads[cityID]++
	start := time.Date(2022, 11, 14, 15, 0, 0, 0, time.UTC)
	forecasts := make([]entity.WeatherForecast, 4)
	for i := range forecasts {
		forecasts[i] = entity.WeatherForecast{CityID: cityID, Datetime: start.Add(time.Duration(3*i) * time.Hour), Temperature: 11}
	}
	return forecasts, nil
}

type recordingSender struct {
	sent   []model.MailMessage
	failTo string
}

func (r *recordingSender) Send(_ context.Context, message model.MailMessage) error {
	if message.To[0] == r.failTo {
		return &mail.DeliveryError{Recipient: r.failTo, Err: errors.New("mail: no address")}
	}
	r.sent = append(r.sent, message)
	return nil
}

var (
	cityA = entity.City{ID: 1, Name: "City_40_40", CountryCode: "TR", Latitude: 40, Longitude: 40, Timezone: 10800}
	cityB = entity.City{ID: 2, Name: "Berlin", CountryCode: "DE", Latitude: 52.52, Longitude: 13.405, Timezone: 3600}
	alice = entity.Subscriber{ID: 1, Email: "alice@example.com"}
	bob   = entity.Subscriber{ID: 2, Email: "bob@example.com"}
	carol = entity.Subscriber{ID: 3, Email: "carol@example.com"}
)

func subscription(id uint, subscriber entity.Subscriber, city entity.City, frequency int) entity.Subscription {
	return entity.Subscription{
		ID: id, SubscriberID: subscriber.ID, Subscriber: subscriber,
		CityID: city.ID, City: city, NotificationFrequency: frequency,
	}
}

func newUseCase(subscriptions []entity.Subscription, sender mail.Sender) (UseCase, *fakeCities) {
	cities := &fakeCities{forecastLoads: map[uint]int{}}
	uc := NewNotificationUseCase(Config{From: "noreply@weather.test"}, &fakeSubscriptions{subscriptions: subscriptions}, cities, sender)
	return uc, cities
}

func TestSendWeatherForecastAtElapsedHourSix(t *testing.T) {
	subscriptions := []entity.Subscription{
		subscription(1, alice, cityA, 2),
		subscription(2, bob, cityA, 3),
		subscription(3, bob, cityB, 3),
		subscription(4, carol, cityA, 4),
	}
	sender := &recordingSender{}
	uc, cities := newUseCase(subscriptions, sender)

	now := DefaultEpoch.Add(6*time.Hour + 10*time.Second)
	due, err := uc.SelectDueSubscriptions(context.Background(), now)
	if err != nil {
		t.Fatalf("SelectDueSubscriptions: %v", err)
	}
	if len(due) != 3 {
		t.Fatalf("due = %d, want 3 (carol's frequency 4 is not due)", len(due))
	}

	report, err := uc.SendWeatherForecast(context.Background(), "request-1", now)
	if err != nil {
		t.Fatalf("SendWeatherForecast: %v", err)
	}
	if report.Subscribers != 2 || report.Sent != 2 || len(report.Failures) != 0 {
		t.Fatalf("report = %+v", report)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(sender.sent))
	}

	aliceMail, bobMail := sender.sent[0], sender.sent[1]
	if aliceMail.To[0] != "alice@example.com" || bobMail.To[0] != "bob@example.com" {
		t.Fatalf("recipients = %v, %v", aliceMail.To, bobMail.To)
	}
	if aliceMail.Subject != "You weather forecast." || aliceMail.From != "noreply@weather.test" || aliceMail.Body != "" {
		t.Errorf("mail = %+v", aliceMail)
	}

	attachment := bobMail.Attachments[0]
	if attachment.Filename != "forecast.json" || attachment.ContentType != "application/json" {
		t.Fatalf("attachment = %+v", attachment)
	}
	var bundle []model.CityForecast
	if err := json.Unmarshal(attachment.Content, &bundle); err != nil {
		t.Fatalf("bundle: %v", err)
	}
	if len(bundle) != 2 || bundle[0].Name != "Berlin" || bundle[1].Name != "City_40_40" || len(bundle[1].Forecast) != 4 {
		t.Fatalf("bob's bundle = %+v", bundle)
	}
	if bundle[1].Forecast[0].LocalDatetime != "2022-11-14T18:00:00+03:00" {
		t.Errorf("local datetime = %s", bundle[1].Forecast[0].LocalDatetime)
	}

	if cities.forecastLoads[cityA.ID] != 1 {
		t.Errorf("forecasts of city A loaded %d times, want once per run", cities.forecastLoads[cityA.ID])
	}
}

func TestNotifyIsolatesDeliveryFailures(t *testing.T) {
	subscriptions := []entity.Subscription{
		subscription(1, alice, cityA, 1),
		subscription(2, bob, cityA, 1),
		subscription(3, carol, cityB, 1),
	}
	sender := &recordingSender{failTo: "bob@example.com"}
	uc, _ := newUseCase(subscriptions, sender)

	report := uc.Notify(context.Background(), subscriptions)
	if report.Sent != 2 || len(report.Failures) != 1 || report.Failures[0].Email != "bob@example.com" {
		t.Fatalf("report = %+v", report)
	}
	if len(sender.sent) != 2 || sender.sent[1].To[0] != "carol@example.com" {
		t.Fatalf("sent = %+v", sender.sent)
	}
}

func TestNotifyDeduplicatesCities(t *testing.T) {
	subscriptions := []entity.Subscription{
		subscription(1, alice, cityA, 1),
		subscription(2, alice, cityA, 1),
	}
	sender := &recordingSender{}
	uc, _ := newUseCase(subscriptions, sender)

	report := uc.Notify(context.Background(), subscriptions)
	if report.Sent != 1 {
		t.Fatalf("report = %+v", report)
	}
	var bundle []model.CityForecast
	if err := json.Unmarshal(sender.sent[0].Attachments[0].Content, &bundle); err != nil || len(bundle) != 1 {
		t.Fatalf("bundle = %+v, %v", bundle, err)
	}
}

func TestNotifyWithoutSubscriptions(t *testing.T) {
	uc, _ := newUseCase(nil, &recordingSender{})
	report := uc.Notify(context.Background(), nil)
	if report.Subscribers != 0 || report.Sent != 0 || report.Failures == nil {
		t.Fatalf("report = %+v", report)
	}
}
