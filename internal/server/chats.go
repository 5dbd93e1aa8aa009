package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"givehaven/internal/loader"
	"givehaven/internal/metrics"
	"givehaven/pkg/types"
)

// ChatListPageData backs both the donor chat list and the home messages list.
type ChatListPageData struct {
	types.BasePageData
	Heading      string
	EmptyMessage string
	EmptyCTAHref string
	EmptyCTA     string
	Chats        loader.Result[*types.ChatRoomSummary]
}

type ChatRoomPageData struct {
	types.BasePageData
	Room     *types.ChatRoom
	UserID   string
	Messages loader.Result[*types.ChatMessage]
}

type chatMessageForm struct {
	Body string `form:"body" validate:"required,max=2000"`
}

func (s *Service) handleDonorChats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := sessionFromContext(ctx)

	data := &ChatListPageData{
		BasePageData: s.basePageData(r, "My Chats"),
		Heading:      "Your conversations",
		EmptyMessage: "You haven't pledged to any needs yet.",
		EmptyCTAHref: "/",
		EmptyCTA:     "Browse needs",
		Chats: loader.Load(ctx, s.logger, "donor_chats", func(ctx context.Context) ([]*types.ChatRoomSummary, error) {
			return s.backend.GetMyDonorChats(ctx, session.UserID)
		}),
	}

	if err := s.renderTemplate(w, r, "page.donor-chats", data); err != nil {
		s.logger.WithError(err).Error("failed to render donor chats page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleHomeMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := sessionFromContext(ctx)

	data := &ChatListPageData{
		BasePageData: s.basePageData(r, "Messages"),
		Heading:      "Messages from donors",
		EmptyMessage: "No donors have reached out yet. Post a need so donors can find you.",
		EmptyCTAHref: "/app",
		EmptyCTA:     "Go to dashboard",
		Chats: loader.Load(ctx, s.logger, "home_chat_rooms", func(ctx context.Context) ([]*types.ChatRoomSummary, error) {
			return s.backend.GetMyHomeChatRooms(ctx, session.UserID)
		}),
	}

	if err := s.renderTemplate(w, r, "page.home-messages", data); err != nil {
		s.logger.WithError(err).Error("failed to render home messages page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleGetChatRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	session := sessionFromContext(ctx)
	roomID := r.PathValue("roomID")

	room, err := s.backend.ChatRoom(ctx, session.UserID, roomID)
	if err != nil {
		if errors.Is(err, types.ErrChatRoomNotFound) || errors.Is(err, types.ErrNotChatMember) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("room_id", roomID).Error("failed to load chat room")
		s.internalServerError(w)
		return
	}

	data := &ChatRoomPageData{
		BasePageData: s.basePageData(r, "Chat"),
		Room:         room,
		UserID:       session.UserID,
		Messages: loader.Load(ctx, s.logger, "chat_messages", func(ctx context.Context) ([]*types.ChatMessage, error) {
			return s.backend.ChatMessages(ctx, session.UserID, roomID)
		}),
	}

	if err := s.renderTemplate(w, r, "page.chat-room", data); err != nil {
		s.logger.WithError(err).Error("failed to render chat room")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostChatMessage(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	roomID := r.PathValue("roomID")
	roomPath := "/chats/" + roomID

	var input chatMessageForm
	if err := s.decodeForm(r, &input); err != nil {
		s.redirectWithError(w, r, roomPath, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := s.backend.SendChatMessage(ctx, session.UserID, roomID, input.Body)
	switch {
	case err == nil:
		http.Redirect(w, r, roomPath, http.StatusSeeOther)
	case errors.Is(err, types.ErrEmptyMessage):
		s.redirectWithError(w, r, roomPath, "Message can't be empty.")
	case errors.Is(err, types.ErrChatRoomNotFound), errors.Is(err, types.ErrNotChatMember):
		http.NotFound(w, r)
	default:
		s.logger.WithError(err).WithField("room_id", roomID).Error("failed to send chat message")
		s.redirectWithError(w, r, roomPath, "Your message could not be sent. Please try again.")
	}
}

func (s *Service) handlePostPledge(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	needID := r.PathValue("needID")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	room, err := s.backend.PledgeToNeed(ctx, session.UserID, needID)
	switch {
	case err == nil:
		metrics.PledgesTotal.WithLabelValues("created").Inc()
		s.redirectWithNotice(w, r, "/chats/"+room.ID, "Thank you! Say hello and arrange the drop off.")
	case errors.Is(err, types.ErrNeedNotFound):
		metrics.PledgesTotal.WithLabelValues("not_found").Inc()
		http.NotFound(w, r)
	case errors.Is(err, types.ErrNeedNotOpen):
		metrics.PledgesTotal.WithLabelValues("not_open").Inc()
		s.redirectWithError(w, r, "/", "Someone already pledged to that need.")
	case errors.Is(err, types.ErrPledgeOwnNeed):
		metrics.PledgesTotal.WithLabelValues("own_need").Inc()
		s.redirectWithError(w, r, "/app", "You can't pledge to your own home's need.")
	default:
		metrics.PledgesTotal.WithLabelValues("error").Inc()
		s.logger.WithError(err).WithField("need_id", needID).Error("failed to pledge to need")
		s.redirectWithError(w, r, "/", "We couldn't record your pledge. Please try again.")
	}
}
