package listing

// Column is the 0-based position of a field in a sheet row.
type Column int

const (
	ColCode Column = iota
	ColAvailable
	ColLocation
	ColDate
	ColMonth
	ColPrice
	ColBeds
	ColBaths
	ColUtilities
	ColMts
	ColStreet
	ColNumber
	ColAgency
	ColID
	ColBrochure
	ColVideo
	ColWhatsappMessage
	ColPaulina
	ColAlessandra
	ColLaura
	ColImages
	ColAdditionalImages
	ColNotes
)

// ColumnCount is the number of cells an encoded row always has.
const ColumnCount = int(ColNotes) + 1

// Decode maps a row to a Record. Rows returned by the Sheets API omit
// trailing empty cells, so missing positions decode as "".
func Decode(row []string) Record {
	cell := func(c Column) string {
		if int(c) < len(row) {
			return row[c]
		}
		return ""
	}

	return Record{
		Code:             cell(ColCode),
		Available:        cell(ColAvailable),
		Location:         cell(ColLocation),
		Date:             cell(ColDate),
		Month:            ParseMeasure(cell(ColMonth)),
		Price:            cell(ColPrice),
		Beds:             ParseMeasure(cell(ColBeds)),
		Baths:            ParseMeasure(cell(ColBaths)),
		Utilities:        cell(ColUtilities),
		Mts:              ParseMeasure(cell(ColMts)),
		Street:           cell(ColStreet),
		Number:           cell(ColNumber),
		Agency:           cell(ColAgency),
		ID:               cell(ColID),
		Brochure:         cell(ColBrochure),
		Video:            cell(ColVideo),
		WhatsappMessage:  cell(ColWhatsappMessage),
		Paulina:          cell(ColPaulina),
		Alessandra:       cell(ColAlessandra),
		Laura:            cell(ColLaura),
		Images:           cell(ColImages),
		AdditionalImages: cell(ColAdditionalImages),
		Notes:            cell(ColNotes),
	}
}

// Encode maps a Record to a row of exactly ColumnCount cells.
func Encode(r Record) []string {
	row := make([]string, ColumnCount)

	row[ColCode] = r.Code
	row[ColAvailable] = r.Available
	row[ColLocation] = r.Location
	row[ColDate] = r.Date
	row[ColMonth] = r.Month.String()
	row[ColPrice] = r.Price
	row[ColBeds] = r.Beds.String()
	row[ColBaths] = r.Baths.String()
	row[ColUtilities] = r.Utilities
	row[ColMts] = r.Mts.String()
	row[ColStreet] = r.Street
	row[ColNumber] = r.Number
	row[ColAgency] = r.Agency
	row[ColID] = r.ID
	row[ColBrochure] = r.Brochure
	row[ColVideo] = r.Video
	row[ColWhatsappMessage] = r.WhatsappMessage
	row[ColPaulina] = r.Paulina
	row[ColAlessandra] = r.Alessandra
	row[ColLaura] = r.Laura
	row[ColImages] = r.Images
	row[ColAdditionalImages] = r.AdditionalImages
	row[ColNotes] = r.Notes

	return row
}
