package server

import (
	"html/template"
)

// Primary (page, head, body)

type pageData struct {
	PageType string
	Head     headData
	Body     bodyData
}

type headData struct {
	Title string
}

type bodyData struct {
	ErrorData    errData
	FormData     formData
	ScheduleData scheduleData
}

// Error page

type errData struct {
	Heading string
	Message string
}

// Import form

type formData struct {
	Name    string
	Text    string
	Message string
	// Editing is set when the form reopens an existing submission.
	Editing bool
}

// Schedule grid

type scheduleData struct {
	Name     string
	Lecture  string
	Tutorial string
	Query    template.URL
	Days     []string
	Rows     []ttRow
	Sessions int
	Placed   int
	Week     string
}

type ttRow struct {
	Label string
	Cells []ttCell
}

type ttCell struct {
	Empty    bool
	Code     string
	Name     string
	Location string
	Badge    string
	Group    string
	Time     string
	Style    template.CSS
}

var formPageData = pageData{
	PageType: "form",
	Head: headData{
		Title: "Import Schedule",
	},
}

var statusNotFoundData = pageData{
	PageType: "error",
	Head: headData{
		Title: "404 Not Found",
	},
	Body: bodyData{
		ErrorData: errData{
			Heading: "404 Not Found",
			Message: "The requested resource was not found on the server.",
		},
	},
}

var statusBadRequestData = pageData{
	PageType: "error",
	Head: headData{
		Title: "400 Bad Request",
	},
	Body: bodyData{
		ErrorData: errData{
			Heading: "400 Bad Request",
			Message: "The request was malformed. Colours are six-digit hex values such as #FFDE59 and calendar weeks start on a Sunday.",
		},
	},
}

var statusMethodNotAllowedData = pageData{
	PageType: "error",
	Head: headData{
		Title: "405 Method Not Allowed",
	},
	Body: bodyData{
		ErrorData: errData{
			Heading: "405 Method Not Allowed",
			Message: "This page does not accept that kind of request.",
		},
	},
}

var statusServerErrorData = pageData{
	PageType: "error",
	Head: headData{
		Title: "500 Internal Server Error",
	},
	Body: bodyData{
		ErrorData: errData{
			Heading: "500 Internal Server Error",
			Message: "The server encountered an unexpected error and cannot continue.",
		},
	},
}
