package model

import (
	"time"

	"github.com/pulsegram/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	result := User{
		ID:         user.ID,
		Name:       user.Name,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Bio:        user.Bio,
		Website:    user.Website,
		AvatarURL:  user.AvatarURL,
		IsVerified: user.IsVerified,
		IsPrivate:  user.IsPrivate,
		CreatedAt:  user.CreatedAt.Format(DefaultTimeLayout),
	}

	if includeSensitive {
		result.Email = user.Email
	}

	return result
}

func ConvertPost(post *entity.Post, isLiked bool) Post {
	if post == nil {
		return Post{}
	}

	return Post{
		ID:            post.ID,
		User:          ConvertUser(&post.User, false),
		Caption:       post.Caption,
		MediaURL:      post.MediaURL,
		MediaType:     string(post.MediaType),
		Location:      post.Location,
		IsPublic:      post.IsPublic,
		LikesCount:    int64(post.LikesCount),
		CommentsCount: int64(post.CommentsCount),
		IsLiked:       isLiked,
		CreatedAt:     post.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertComment(comment *entity.Comment, repliesCount int64, replies []Comment) Comment {
	if comment == nil {
		return Comment{}
	}

	result := Comment{
		ID:           comment.ID,
		PostID:       comment.PostID,
		User:         ConvertUser(&comment.User, false),
		Content:      comment.Content,
		RepliesCount: repliesCount,
		Replies:      replies,
		CreatedAt:    comment.CreatedAt.Format(DefaultTimeLayout),
	}

	if comment.ParentID.Valid {
		result.ParentID = comment.ParentID.String
	}

	return result
}

func ConvertFollowRequest(follow *entity.Follow) FollowRequest {
	if follow == nil {
		return FollowRequest{}
	}

	return FollowRequest{
		ID:        follow.ID,
		Follower:  ConvertUser(&follow.Follower, false),
		CreatedAt: follow.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertMessage(message *entity.Message) Message {
	if message == nil {
		return Message{}
	}

	result := Message{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Content:    message.Content,
		Type:       string(message.Type),
		MediaURL:   message.MediaURL,
		IsRead:     message.IsRead,
		IsDeleted:  message.IsDeleted,
		CreatedAt:  message.CreatedAt.Format(DefaultTimeLayout),
	}

	if message.ReadAt.Valid {
		result.ReadAt = message.ReadAt.Time.Format(DefaultTimeLayout)
	}

	return result
}

func ConvertNotification(notification *entity.Notification) Notification {
	if notification == nil {
		return Notification{}
	}

	result := Notification{
		ID:        notification.ID,
		Sender:    ConvertUser(&notification.Sender, false),
		Type:      string(notification.Type),
		Message:   notification.Message,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt.Format(DefaultTimeLayout),
	}

	if notification.PostID.Valid {
		result.PostID = notification.PostID.String
	}

	if notification.CommentID.Valid {
		result.CommentID = notification.CommentID.String
	}

	if notification.ReadAt.Valid {
		result.ReadAt = notification.ReadAt.Time.Format(DefaultTimeLayout)
	}

	return result
}
