package validate

import (
	"net/url"
	"regexp"
	"strconv"

	"github.com/diagnosis/elsabor-web/internal/domain"
)

// Form field names.
const (
	FieldName            = "nombre"
	FieldEmail           = "email"
	FieldDate            = "fecha"
	FieldTime            = "hora"
	FieldPartySize       = "personas"
	FieldSpecialRequests = "peticiones"
	FieldMessage         = "mensaje"
)

var hourRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

var reservationChain = Chain{
	Body(FieldName).Trim().Escape().NotEmpty(),
	Body(FieldEmail).IsEmail().NormalizeEmail(),
	Body(FieldDate).NotEmpty(),
	Body(FieldTime).Matches(hourRe),
	Body(FieldPartySize).IsInt(domain.MinPartySize, domain.MaxPartySize),
	Body(FieldSpecialRequests).Trim().Escape(),
}

var contactChain = Chain{
	Body(FieldName).Trim().Escape().NotEmpty(),
	Body(FieldEmail).IsEmail().NormalizeEmail(),
	Body(FieldMessage).Trim().Escape().IsLength(domain.MinMessageLength, domain.MaxMessageLength),
}

// Reservation validates a reservation form. On failure the returned Result
// still lists the failed fields.
func Reservation(form url.Values) (domain.ReservationReq, *Result, error) {
	res, err := reservationChain.Run(form)
	if err != nil {
		return domain.ReservationReq{}, res, err
	}
	party, _ := strconv.Atoi(res.Values.Get(FieldPartySize))
	return domain.ReservationReq{
		Name:            res.Values.Get(FieldName),
		Email:           res.Values.Get(FieldEmail),
		Date:            res.Values.Get(FieldDate),
		Time:            res.Values.Get(FieldTime),
		PartySize:       party,
		SpecialRequests: res.Values.Get(FieldSpecialRequests),
	}, res, nil
}

// Contact validates a contact form.
func Contact(form url.Values) (domain.ContactReq, *Result, error) {
	res, err := contactChain.Run(form)
	if err != nil {
		return domain.ContactReq{}, res, err
	}
	return domain.ContactReq{
		Name:    res.Values.Get(FieldName),
		Email:   res.Values.Get(FieldEmail),
		Message: res.Values.Get(FieldMessage),
	}, res, nil
}
