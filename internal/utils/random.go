package utils

import (
	"fmt"
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/crypto/bcrypt"

	"github.com/sysu-ecnc-dev/coach-office/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateUsernameFromChineseName 把中文姓名转成拼音并截取随机前缀拼出用户名。
func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, p := range pinyinArray {
		length := rand.Intn(len(p)) + 1
		username += p[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleStaff,
	}

	return user, nil
}

var letters = "abcdefghijklmnopqrstuvwxyz"

func GenerateRandomOTP() string {
	otp := make([]byte, 6)
	for i := range otp {
		otp[i] = digits[rand.Intn(len(digits))]
	}
	return string(otp)
}

func GenerateRandomCoach(emailDomainName string) *domain.Coach {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)

	phone := make([]byte, 11)
	phone[0] = '1'
	for i := 1; i < len(phone); i++ {
		phone[i] = digits[rand.Intn(len(digits))]
	}

	return &domain.Coach{
		Name:     fullName,
		Email:    username + "@" + emailDomainName,
		Phone:    string(phone),
		HourRate: float64(rand.Intn(40) + 10),
		Category: domain.Categories[rand.Intn(len(domain.Categories))],
	}
}

var weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// GenerateRandomAvailability 随机生成一份周空闲时间：
// 每天随机决定是否出勤，出勤的日子给 1~3 个互不重叠的整点时间段。
func GenerateRandomAvailability() domain.WeeklyAvailability {
	wa := make(domain.WeeklyAvailability, len(weekdays))

	for _, day := range weekdays {
		selected := rand.Intn(2) == 1
		intervals := make([]domain.TimeInterval, 0)

		if selected {
			intervalsNum := rand.Intn(3) + 1
			hour := rand.Intn(4) + 8 // 8~11 点开始

			for i := 0; i < intervalsNum && hour < 21; i++ {
				length := rand.Intn(3) + 1
				intervals = append(intervals, domain.TimeInterval{
					StartTime: fmt.Sprintf("%02d:00", hour),
					EndTime:   fmt.Sprintf("%02d:00", hour+length),
				})
				hour += length + rand.Intn(2) + 1
			}
		}

		wa[day] = domain.DaySchedule{
			Selected:  selected,
			Intervals: intervals,
		}
	}

	return wa
}

// GenerateRandomSessionSlots 随机生成每周 1~3 个互不同天的课程模式。
func GenerateRandomSessionSlots() []domain.SessionSlot {
	shuffled := append([]string{}, weekdays...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	slotsNum := rand.Intn(3) + 1
	slots := make([]domain.SessionSlot, 0, slotsNum)
	for i := 0; i < slotsNum; i++ {
		slots = append(slots, domain.SessionSlot{
			Day:  shuffled[i],
			Time: fmt.Sprintf("%02d:00", rand.Intn(6)+16), // 16~21 点
		})
	}

	return slots
}

func GenerateRandomID(letterLength, digitsLength int) string {
	id := make([]byte, letterLength+digitsLength)
	for i := range id {
		if i < letterLength {
			id[i] = letters[rand.Intn(len(letters))]
		} else {
			id[i] = digits[rand.Intn(len(digits))]
		}
	}
	return string(id)
}

func GenerateRandomApplicant(emailDomainName string) *domain.Applicant {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)

	return &domain.Applicant{
		Name:   fullName,
		Email:  username + "@" + emailDomainName,
		CVURL:  "https://cv.example.com/" + GenerateRandomID(4, 4) + ".pdf",
		Status: domain.ApplicantStatusPending,
	}
}

func GenerateRandomStudent(emailDomainName string) *domain.EnrolledStudent {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)

	phone := make([]byte, 11)
	phone[0] = '1'
	for i := 1; i < len(phone); i++ {
		phone[i] = digits[rand.Intn(len(digits))]
	}

	return &domain.EnrolledStudent{
		StudentName:  fullName,
		StudentEmail: username + "@" + emailDomainName,
		StudentPhone: string(phone),
	}
}
