package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct{}

func NewAttendanceHandler() AttendanceHandler {
	return &attendanceHandlerImpl{}
}

// RecordView is a record with its display strings.
type RecordView struct {
	attendance.Record
	ClockIn      string `json:"clockIn"`
	ClockOut     string `json:"clockOut"`
	WorkingHours string `json:"workingHours"`
}

// AttendanceListView is one page of records with the worked time of the
// closed ones.
type AttendanceListView struct {
	Records           []RecordView `json:"records"`
	TotalWorkingHours string       `json:"totalWorkingHours"`
}

func attendanceListView(records []attendance.Record) AttendanceListView {
	return AttendanceListView{
		Records:           recordViews(records),
		TotalWorkingHours: attendance.FormatDuration(attendance.TotalWorkingHours(records)),
	}
}

type TodayView struct {
	IsClockedIn  bool        `json:"isClockedIn"`
	IsClockedOut bool        `json:"isClockedOut"`
	Record       *RecordView `json:"record"`
	ClockIn      string      `json:"clockIn"`
	ClockOut     string      `json:"clockOut"`
	WorkingHours string      `json:"workingHours"`
}

func recordView(rec *attendance.Record) *RecordView {
	if rec == nil {
		return nil
	}
	return &RecordView{
		Record:       *rec,
		ClockIn:      attendance.FormatClock(&rec.ClockInTime, nil),
		ClockOut:     attendance.FormatClock(rec.ClockOutTime, nil),
		WorkingHours: attendance.FormatWorkingHours(rec),
	}
}

func recordViews(records []attendance.Record) []RecordView {
	out := make([]RecordView, 0, len(records))
	for i := range records {
		out = append(out, *recordView(&records[i]))
	}
	return out
}

func todayView(st attendance.TodayStatus) TodayView {
	view := TodayView{
		IsClockedIn:  st.IsClockedIn,
		IsClockedOut: st.IsClockedOut,
		Record:       recordView(st.Record),
		ClockIn:      attendance.Placeholder,
		ClockOut:     attendance.Placeholder,
		WorkingHours: attendance.Placeholder,
	}
	if view.Record != nil {
		view.ClockIn = view.Record.ClockIn
		view.ClockOut = view.Record.ClockOut
		view.WorkingHours = view.Record.WorkingHours
	}
	return view
}

func listFilter(r *http.Request) attendance.ListFilter {
	q := r.URL.Query()
	return attendance.ListFilter{
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
		UserID:    q.Get("userId"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockInRequest
	if !decode(w, r, "ClockIn", &req) {
		return
	}

	store := instance(r).Attendance
	if !store.ClockIn(r.Context(), req) {
		actionFailed(w, r, store, req)
		return
	}
	response.SuccessWithMessage(w, "Clocked in", todayView(store.Today()))
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockOutRequest
	if !decode(w, r, "ClockOut", &req) {
		return
	}

	store := instance(r).Attendance
	if !store.ClockOut(r.Context(), req) {
		actionFailed(w, r, store, req)
		return
	}
	response.SuccessWithMessage(w, "Clocked out", todayView(store.Today()))
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	store := instance(r).Attendance
	if !store.FetchToday(r.Context()) {
		actionFailed(w, r, store, nil)
		return
	}
	response.Success(w, todayView(store.Today()))
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	filter := listFilter(r)
	filter.UserID = ""

	store := instance(r).Attendance
	if !store.FetchRecords(r.Context(), filter) {
		actionFailed(w, r, store, nil)
		return
	}
	response.SuccessWithMeta(w, attendanceListView(store.Records()), meta(store.Pagination()))
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	store := instance(r).Attendance
	if !store.FetchAllRecords(r.Context(), listFilter(r)) {
		actionFailed(w, r, store, nil)
		return
	}
	response.SuccessWithMeta(w, attendanceListView(store.Records()), meta(store.Pagination()))
}
