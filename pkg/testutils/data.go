package testutils

import "github.com/aifirst/llmdemos/pkg/models"

var TestMessages = []models.Message{
	{
		Role:    models.RoleSystem,
		Content: "You are a logistics analyst.",
	},
	{
		Role:    models.RoleAssistant,
		Content: "Hi there! Ask me about your shipments.",
	},
	{
		Role:    models.RoleUser,
		Content: "Which truck route is the most expensive on average?",
	},
	{
		Role:    models.RoleAssistant,
		Content: "Manila to Cebu averages 1,200 per shipment.",
	},
}

const ShipmentsCSV = `Mode,Origin,Destination,Transit Days,Cost
Truck,Manila,Cebu,3,1200
Air,Manila,Davao,1,5400
Sea,Batangas,Iloilo,7,800
Rail,Tarlac,Manila,1,300
`

const PricesCSV = `Date,Close,Open,High,Low,Volume
09/13/2024,222.50,223.58,224.04,221.91,36766620
09/12/2024,222.77,222.50,223.55,219.82,37498230
09/11/2024,222.66,221.46,223.09,217.89,44587100
09/10/2024,220.11,218.92,221.48,216.73,51591030
`

var PriceColumns = []string{"Close", "Open", "High", "Low", "Volume"}

const ReviewsCSV = `text,stars
The delivery was good and fast,5
Bad packaging and a bad courier,1
It arrived on Tuesday,3
`
